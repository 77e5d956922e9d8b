package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solarbom/internal/classify"
	"solarbom/internal/grid"
)

var classifyFormat string

var classifyCmd = &cobra.Command{
	Use:   "classify <layout>",
	Short: "Show the cell type of every panel in a layout",
	Long: `Classify every cell of a roof layout and tally the cell types.

Each panel gets one orientation tag (Single, End, Mid and their Top, Bottom,
Middle and Center variants) plus any corner tags.

Examples:
  solarbom classify roof.txt
  solarbom classify roof.txt --format json
  solarbom classify roof.txt --classifier legacy-exclusive`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "human", "Output format (human, json)")
	classifyCmd.Flags().StringVar(&classifierFlag, "classifier", "", "Classifier mode: additive, legacy-exclusive")
	classifyCmd.Flags().StringVar(&layoutFormatFlag, "layout-format", "text", "Layout format when reading stdin: text, json, yaml, toml")
	rootCmd.AddCommand(classifyCmd)
}

// ClassifyResponseCLI is the classify command output
type ClassifyResponseCLI struct {
	Mode   classify.Mode    `json:"mode"`
	Grid   grid.Grid        `json:"grid"`
	Cells  [][]classify.Set `json:"cells"`
	Counts classify.Counts  `json:"counts"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	g, err := readLayout(args[0], stdinReader())
	if err != nil {
		return err
	}
	c, err := resolveClassifier()
	if err != nil {
		return err
	}

	resp := &ClassifyResponseCLI{
		Mode:   c.Mode,
		Grid:   g,
		Cells:  c.Classify(g),
		Counts: c.CountCellTypes(g),
	}
	out, err := FormatResponse(resp, OutputFormat(classifyFormat))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
