/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/intsetbtree/pkg/config"
)

var (
	cfgPath     string
	metricsAddr string
	historyDir  string
	cfg         *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "intsetbench",
	Short: "Benchmark an ordered int32 set built on a pluggable B+ tree",
	Long: `intsetbench drives a B+-tree-backed set of 32-bit signed integers
through insert/search/delete phases read from plain integer files, and
reports per-round timings as CSV.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath != "" {
			loaded, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}
		if metricsAddr != "" {
			cfg.Metrics.Enabled = true
			cfg.Metrics.Addr = metricsAddr
		}
		if historyDir != "" {
			cfg.History.Enabled = true
			cfg.History.Dir = historyDir
		}
		return nil
	},
}

// Execute runs the root command, exiting with status 1 on any error per
// the driver's argument/I/O error contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "optional YAML defaults file")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve /metrics on (disabled if empty)")
	rootCmd.PersistentFlags().StringVar(&historyDir, "history-dir", "", "pebble directory to append run history to (disabled if empty)")
}
