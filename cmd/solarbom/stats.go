package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solarbom/internal/grid"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats <layout>",
	Short: "Show the grid measurements used by the BOM rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "human", "Output format (human, json)")
	statsCmd.Flags().StringVar(&layoutFormatFlag, "layout-format", "text", "Layout format when reading stdin: text, json, yaml, toml")
	rootCmd.AddCommand(statsCmd)
}

// StatsResponseCLI is the stats command output
type StatsResponseCLI struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Stats grid.Stats `json:"stats"`
}

func runStats(cmd *cobra.Command, args []string) error {
	g, err := readLayout(args[0], stdinReader())
	if err != nil {
		return err
	}

	resp := &StatsResponseCLI{Rows: g.Rows(), Cols: g.Cols(), Stats: grid.Measure(g)}
	out, err := FormatResponse(resp, OutputFormat(statsFormat))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
