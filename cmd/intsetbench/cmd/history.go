package cmd

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/intsetbtree/pkg/resultstore"
)

var historyDirFlag string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List rows previously appended to a results ledger by run --history-dir",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyDirFlag, "dir", "", "pebble directory to read run history from (required)")
	if err := historyCmd.MarkFlagRequired("dir"); err != nil {
		panic(err)
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := resultstore.Open(historyDirFlag)
	if err != nil {
		return errors.Wrap(err, "history: opening results ledger")
	}
	defer store.Close()

	rows, err := store.All()
	if err != nil {
		return errors.Wrap(err, "history: reading results ledger")
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(append([]string{"run_id"}, csvHeader...)); err != nil {
		return errors.Wrap(err, "history: writing CSV header")
	}
	for _, row := range rows {
		if err := w.Write([]string{
			row.RunID, row.Tag, row.Impl, strconv.Itoa(row.M),
			strconv.Itoa(row.NInsert), strconv.Itoa(row.NSearch), strconv.Itoa(row.NDelete),
			strconv.Itoa(row.Round),
			strconv.FormatInt(row.InsertNs, 10), strconv.FormatInt(row.SearchNs, 10), strconv.FormatInt(row.DeleteNs, 10),
			strconv.Itoa(row.FoundCount), strconv.Itoa(row.HeightAfterInsert),
		}); err != nil {
			return errors.Wrap(err, "history: writing CSV row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "history: flushing CSV output")
}
