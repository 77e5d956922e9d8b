package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"solarbom/internal/export"
)

var (
	calcPanel       string
	calcStrings     int
	calcFormat      string
	calcIncludeZero bool
	calcExplain     bool
	calcTitle       string
)

var calculateCmd = &cobra.Command{
	Use:   "calculate <layout>",
	Short: "Calculate the bill of materials for a roof layout",
	Long: `Calculate the priced bill of materials for a roof layout.

The layout is a file of rows of 0 (empty) and 1 (panel). Text files use one row
per line; .json, .yaml and .toml files hold a "rows" array. Use "-" to
read the layout from stdin.

Examples:
  solarbom calculate roof.txt
  solarbom calculate roof.yaml --panel "LONGi 410w" --strings 2
  solarbom calculate roof.txt --format checklist
  solarbom calculate roof.txt --format json --seal-roll per-row
  cat roof.txt | solarbom calculate -`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVar(&calcPanel, "panel", "", "Panel type (default from config)")
	calculateCmd.Flags().IntVar(&calcStrings, "strings", 0, "Number of electrical strings (default from config)")
	calculateCmd.Flags().StringVar(&calcFormat, "format", "", "Output format: human, json, checklist, csv, markdown (default from config)")
	calculateCmd.Flags().BoolVar(&calcIncludeZero, "all", false, "Include components with a zero quantity")
	calculateCmd.Flags().BoolVar(&calcExplain, "explain", false, "Add the explanation column to human and csv output")
	calculateCmd.Flags().StringVar(&calcTitle, "title", "", "Title for markdown output")
	addRuleFlags(calculateCmd)
	calculateCmd.Flags().StringVar(&layoutFormatFlag, "layout-format", "text", "Layout format when reading stdin: text, json, yaml, toml")
	rootCmd.AddCommand(calculateCmd)
}

func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sealRollFlag, "seal-roll", "", "Seal roll rule: per-ten-panels, per-row")
	cmd.Flags().StringVar(&cableTiesFlag, "cable-ties", "", "Cable tie rule: per-ten-panels, per-string")
	cmd.Flags().StringVar(&deepLeadFlag, "deep-lead", "", "Deep lead rule: exposed-underside, widest-row")
	cmd.Flags().StringVar(&classifierFlag, "classifier", "", "Classifier mode: additive, legacy-exclusive")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	g, err := readLayout(args[0], stdinReader())
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}

	panel := flagOr(calcPanel, appConfig.Defaults.PanelType)
	numStrings := calcStrings
	if !cmd.Flags().Changed("strings") {
		numStrings = appConfig.Defaults.Strings
	}

	b, err := engine.CalculateGrid(g, panel, numStrings)
	if err != nil {
		return err
	}

	format := flagOr(calcFormat, appConfig.Output.Format)
	if format == string(FormatJSON) {
		out, err := FormatResponse(b, FormatJSON)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	ef, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.NewExporter(logger).Write(os.Stdout, b, ef, export.Options{
		IncludeZero:  calcIncludeZero,
		Explanations: calcExplain,
		Title:        calcTitle,
	})
}
