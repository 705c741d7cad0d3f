package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ssargent/intsetbtree/pkg/bptree"
)

var (
	inspectOrder int
	inspectImpl  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Interactively insert/search/delete against a live tree",
	Long: `inspect opens a REPL over a single in-process tree for manual
exploration. Commands: insert <k>, search <k>, delete <k>, height, verify,
exit.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectOrder, "m", 32, "tree order")
	inspectCmd.Flags().StringVar(&inspectImpl, "impl", "array", "node-store backend: array, linked, or skiplist")
}

func runInspect(cmd *cobra.Command, args []string) error {
	backend, ok := bptree.ParseBackend(inspectImpl)
	if !ok {
		return fmt.Errorf("inspect: unknown --impl %q", inspectImpl)
	}
	tr := bptree.New(inspectOrder, backend)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := filepath.Join(os.TempDir(), ".intsetbench_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("tree order=%d backend=%s\n", tr.Order(), tr.Backend())
	fmt.Println("commands: insert <k>, search <k>, delete <k>, height, verify, exit")

	for {
		input, err := line.Prompt("intsetbench> ")
		if err != nil {
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == "exit" {
			break
		}
		if err := dispatch(tr, input); err != nil {
			fmt.Println("error:", err)
		}
	}

	if f, err := os.Create(historyFile); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
	return nil
}

func dispatch(tr *bptree.Tree, input string) error {
	fields := strings.Fields(input)
	switch fields[0] {
	case "insert", "search", "delete":
		if len(fields) != 2 {
			return fmt.Errorf("usage: %s <key>", fields[0])
		}
		k, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid key %q: %w", fields[1], err)
		}
		switch fields[0] {
		case "insert":
			tr.Insert(int32(k))
		case "delete":
			tr.Delete(int32(k))
		case "search":
			fmt.Println(tr.Search(int32(k)))
		}
	case "height":
		fmt.Println(tr.Height())
	case "verify":
		if err := tr.Verify(); err != nil {
			return err
		}
		fmt.Println("ok")
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}
