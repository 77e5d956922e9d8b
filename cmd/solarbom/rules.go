package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solarbom/internal/bom"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Explain how each component quantity is calculated",
	Long: `List every BOM component with the rule used to derive its quantity.
The rule variants follow the configuration unless overridden by flags.

Examples:
  solarbom rules
  solarbom rules --seal-roll per-row --cable-ties per-string`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "human", "Output format (human, json)")
	addRuleFlags(rulesCmd)
	rootCmd.AddCommand(rulesCmd)
}

// RulesResponseCLI is the rules command output
type RulesResponseCLI struct {
	Rules        bom.Rules             `json:"rules"`
	Descriptions []bom.RuleDescription `json:"descriptions"`
}

func runRules(cmd *cobra.Command, args []string) error {
	rules, err := resolveRules()
	if err != nil {
		return err
	}
	resp := &RulesResponseCLI{Rules: rules, Descriptions: bom.Describe(rules)}
	out, err := FormatResponse(resp, OutputFormat(rulesFormat))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
