package cmd

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/intsetbtree/internal/inputio"
	"github.com/ssargent/intsetbtree/pkg/bptree"
	"github.com/ssargent/intsetbtree/pkg/metrics"
	"github.com/ssargent/intsetbtree/pkg/resultstore"
)

var csvHeader = []string{
	"tag", "impl", "M", "n_insert", "n_search", "n_delete", "round",
	"insert_ns", "search_ns", "delete_ns", "found_count", "height_after_insert",
}

type runFlags struct {
	m          int
	impl       string
	insertPath string
	searchPath string
	deletePath string
	rounds     int
	csvPath    string
	tag        string
	verify     bool
}

var rf runFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the insert/search/delete benchmark and emit CSV rows",
	RunE:  runBenchmark,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&rf.m, "m", 0, "tree order (required)")
	runCmd.Flags().StringVar(&rf.impl, "impl", "", "node-store backend: array, linked, or skiplist (required)")
	runCmd.Flags().StringVar(&rf.insertPath, "insert", "", "path to the insert-key integer file (required)")
	runCmd.Flags().StringVar(&rf.searchPath, "search", "", "path to the search-key integer file (required)")
	runCmd.Flags().StringVar(&rf.deletePath, "delete", "", "path to the delete-key integer file (required)")
	runCmd.Flags().IntVar(&rf.rounds, "rounds", 3, "number of rounds to repeat the insert/search/delete cycle")
	runCmd.Flags().StringVar(&rf.csvPath, "csv", "", "CSV output path (default stdout)")
	runCmd.Flags().StringVar(&rf.tag, "tag", "", "free-form tag recorded in every CSV row")
	runCmd.Flags().BoolVar(&rf.verify, "verify", false, "re-check structural invariants after each phase")

	for _, name := range []string{"m", "impl", "insert", "search", "delete"} {
		if err := runCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	backend, ok := bptree.ParseBackend(rf.impl)
	if !ok {
		return errors.Newf("run: unknown --impl %q, want array, linked, or skiplist", rf.impl)
	}
	if rf.rounds < 1 {
		return errors.Newf("run: --rounds must be >= 1, got %d", rf.rounds)
	}

	insertKeys, err := inputio.ReadInts(rf.insertPath)
	if err != nil {
		return errors.Wrap(err, "run: reading --insert file")
	}
	searchKeys, err := inputio.ReadInts(rf.searchPath)
	if err != nil {
		return errors.Wrap(err, "run: reading --search file")
	}
	deleteKeys, err := inputio.ReadInts(rf.deletePath)
	if err != nil {
		return errors.Wrap(err, "run: reading --delete file")
	}

	runID := ksuid.New()
	log.Printf("run %s: impl=%s m=%d rounds=%d n_insert=%d n_search=%d n_delete=%d",
		runID, rf.impl, rf.m, rf.rounds, len(insertKeys), len(searchKeys), len(deleteKeys))

	var mtr *metrics.Metrics
	if cfg.Metrics.Enabled {
		mtr = metrics.New()
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Printf("run %s: metrics server stopped: %v", runID, err)
			}
		}()
	}

	var store *resultstore.Store
	if cfg.History.Enabled {
		store, err = resultstore.Open(cfg.History.Dir)
		if err != nil {
			return errors.Wrap(err, "run: opening results ledger")
		}
		defer store.Close()
	}

	var out io.Writer = os.Stdout
	if rf.csvPath != "" {
		f, err := os.Create(rf.csvPath)
		if err != nil {
			return errors.Wrap(err, "run: creating --csv file")
		}
		defer f.Close()
		out = f
	}
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return errors.Wrap(err, "run: writing CSV header")
	}

	for round := 1; round <= rf.rounds; round++ {
		tr := bptree.New(rf.m, backend)

		t0 := time.Now()
		for _, k := range insertKeys {
			tr.Insert(k)
		}
		insertDur := time.Since(t0)
		if rf.verify {
			if err := tr.Verify(); err != nil {
				return errors.Wrapf(err, "run: round %d: invariant violated after insert", round)
			}
		}
		heightAfterInsert := tr.Height()

		found := 0
		t0 = time.Now()
		for _, k := range searchKeys {
			if tr.Search(k) {
				found++
			}
		}
		searchDur := time.Since(t0)
		if rf.verify {
			if err := tr.Verify(); err != nil {
				return errors.Wrapf(err, "run: round %d: invariant violated after search", round)
			}
		}

		t0 = time.Now()
		for _, k := range deleteKeys {
			tr.Delete(k)
		}
		deleteDur := time.Since(t0)
		if rf.verify {
			if err := tr.Verify(); err != nil {
				return errors.Wrapf(err, "run: round %d: invariant violated after delete", round)
			}
		}

		row := resultstore.Row{
			Tag:               rf.tag,
			Impl:              rf.impl,
			M:                 rf.m,
			NInsert:           len(insertKeys),
			NSearch:           len(searchKeys),
			NDelete:           len(deleteKeys),
			Round:             round,
			InsertNs:          insertDur.Nanoseconds(),
			SearchNs:          searchDur.Nanoseconds(),
			DeleteNs:          deleteDur.Nanoseconds(),
			FoundCount:        found,
			HeightAfterInsert: heightAfterInsert,
		}

		if err := w.Write([]string{
			row.Tag, row.Impl, strconv.Itoa(row.M),
			strconv.Itoa(row.NInsert), strconv.Itoa(row.NSearch), strconv.Itoa(row.NDelete),
			strconv.Itoa(row.Round),
			strconv.FormatInt(row.InsertNs, 10), strconv.FormatInt(row.SearchNs, 10), strconv.FormatInt(row.DeleteNs, 10),
			strconv.Itoa(row.FoundCount), strconv.Itoa(row.HeightAfterInsert),
		}); err != nil {
			return errors.Wrap(err, "run: writing CSV row")
		}

		if mtr != nil {
			mtr.RecordPhase(rf.impl, "insert", insertDur)
			mtr.RecordPhase(rf.impl, "search", searchDur)
			mtr.RecordPhase(rf.impl, "delete", deleteDur)
			mtr.RecordRound(rf.impl, found, heightAfterInsert)
		}
		if store != nil {
			if id, err := store.Append(row); err != nil {
				log.Printf("run %s: round %d: failed to append to results ledger: %v", runID, round, err)
			} else {
				log.Printf("run %s: round %d persisted as %s", runID, round, id)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "run: flushing CSV output")
	}
	return nil
}
