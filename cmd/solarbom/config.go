package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"solarbom/internal/config"
	"solarbom/internal/output"
)

var (
	configFormat   string
	configShowDiff bool
	configForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage solarbom configuration",
	Long:  "View and manage solarbom configuration stored in .solarbom/config.{json,yaml,toml}",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective solarbom configuration.

Examples:
  solarbom config show              # Pretty-print current config
  solarbom config show --format json
  solarbom config show --diff       # Only show non-default values`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Long:  "Display all supported SOLARBOM_* environment variable overrides",
	Args:  cobra.NoArgs,
	RunE:  runConfigEnv,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to .solarbom/config.json",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, human)")
	configShowCmd.Flags().BoolVar(&configShowDiff, "diff", false, "Only show non-default values")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config.json")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string                 `json:"configPath,omitempty"`
	UsedDefaults bool                   `json:"usedDefaults"`
	EnvOverrides []config.EnvOverride   `json:"envOverrides,omitempty"`
	Config       map[string]interface{} `json:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	result, err := config.LoadConfigWithDetails(projectDir)
	if err != nil {
		return err
	}

	if configFormat == "json" {
		return outputConfigJSON(result, configShowDiff)
	}
	outputConfigHuman(result, configShowDiff)
	return nil
}

func toMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func outputConfigJSON(result *config.LoadResult, diffOnly bool) error {
	configMap, err := toMap(result.Config)
	if err != nil {
		return err
	}
	if diffOnly {
		defaultMap, err := toMap(config.DefaultConfig())
		if err != nil {
			return err
		}
		configMap = computeDiff(configMap, defaultMap)
	}

	response := ConfigShowResponse{
		ConfigPath:   result.ConfigPath,
		UsedDefaults: result.UsedDefaults,
		EnvOverrides: result.EnvOverrides,
		Config:       configMap,
	}
	out, err := output.DeterministicEncodeIndented(response, "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// configEntry is one dotted key of the human listing.
type configEntry struct {
	key          string
	value        interface{}
	defaultValue interface{}
}

func configEntries(cfg, defaults *config.Config) []configEntry {
	return []configEntry{
		{"version", cfg.Version, defaults.Version},
		{"referenceData", valueOrDefault(cfg.ReferenceData, "(built-in)"), "(built-in)"},
		{"defaults.panelType", cfg.Defaults.PanelType, defaults.Defaults.PanelType},
		{"defaults.strings", cfg.Defaults.Strings, defaults.Defaults.Strings},
		{"rules.sealRoll", cfg.Rules.SealRoll, defaults.Rules.SealRoll},
		{"rules.cableTies", cfg.Rules.CableTies, defaults.Rules.CableTies},
		{"rules.deepLead", cfg.Rules.DeepLead, defaults.Rules.DeepLead},
		{"classifier.mode", cfg.Classifier.Mode, defaults.Classifier.Mode},
		{"output.format", cfg.Output.Format, defaults.Output.Format},
		{"logging.format", cfg.Logging.Format, defaults.Logging.Format},
		{"logging.level", cfg.Logging.Level, defaults.Logging.Level},
		{"logging.file", valueOrDefault(cfg.Logging.File, "(none)"), "(none)"},
	}
}

func outputConfigHuman(result *config.LoadResult, diffOnly bool) {
	fmt.Println("solarbom Configuration")
	fmt.Println(strings.Repeat("─", 50))

	if result.UsedDefaults {
		fmt.Println("Source: defaults (no config file found)")
	} else if result.ConfigPath != "" {
		fmt.Printf("Source: %s\n", result.ConfigPath)
	}

	if len(result.EnvOverrides) > 0 {
		fmt.Println("\nEnvironment Overrides:")
		for _, ov := range result.EnvOverrides {
			fmt.Printf("  %s=%s → %s\n", ov.EnvVar, ov.Value, ov.Path)
		}
	}
	fmt.Println()

	entries := configEntries(result.Config, config.DefaultConfig())
	if diffOnly {
		fmt.Println("Modified Settings (differs from defaults):")
		fmt.Println()
		n := 0
		for _, e := range entries {
			if !isEqual(e.value, e.defaultValue) {
				fmt.Printf("  %s: %v (default: %v)\n", e.key, e.value, e.defaultValue)
				n++
			}
		}
		if n == 0 {
			fmt.Println("  (no modifications - using all defaults)")
		}
	} else {
		for _, e := range entries {
			printConfigSection(e.key, e.value, e.defaultValue)
		}
	}

	fmt.Println()
	fmt.Println("Use 'solarbom config show --format json' for full configuration")
	fmt.Println("Use 'solarbom config env' to see supported environment variables")
}

func printConfigSection(name string, value, defaultValue interface{}) {
	modified := ""
	if !isEqual(value, defaultValue) {
		modified = fmt.Sprintf(" (default: %v)", defaultValue)
	}
	fmt.Printf("%s: %v%s\n", name, value, modified)
}

type envVarInfo struct {
	name    string
	desc    string
	varType string
}

func runConfigEnv(cmd *cobra.Command, args []string) error {
	fmt.Println("Supported solarbom Environment Variables")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println()

	categories := map[string][]envVarInfo{
		"General": {
			{config.ConfigPathEnvVar, "Path to config file", "string"},
			{"SOLARBOM_REFERENCE_DATA", "Reference data file (prices and tables)", "string"},
			{"SOLARBOM_OUTPUT_FORMAT", "Output format (human, json, checklist, csv, markdown)", "string"},
		},
		"Defaults": {
			{"SOLARBOM_PANEL_TYPE", "Panel type", "string"},
			{"SOLARBOM_STRINGS", "Number of electrical strings", "int"},
		},
		"Rules": {
			{"SOLARBOM_SEAL_ROLL_RULE", "Seal roll rule (per-ten-panels, per-row)", "string"},
			{"SOLARBOM_CABLE_TIES_RULE", "Cable tie rule (per-ten-panels, per-string)", "string"},
			{"SOLARBOM_DEEP_LEAD_RULE", "Deep lead rule (exposed-underside, widest-row)", "string"},
			{"SOLARBOM_CLASSIFIER_MODE", "Classifier mode (additive, legacy-exclusive)", "string"},
		},
		"Logging": {
			{"SOLARBOM_LOG_LEVEL", "Log level (debug, info, warn, error)", "string"},
			{"SOLARBOM_LOG_FORMAT", "Log format (human, json)", "string"},
			{"SOLARBOM_LOG_FILE", "Also append logs to this file", "string"},
		},
	}

	order := []string{"General", "Defaults", "Rules", "Logging"}
	for _, cat := range order {
		fmt.Printf("%s:\n", cat)
		for _, v := range categories[cat] {
			fmt.Printf("  %-28s %s (%s)\n", v.name, v.desc, v.varType)
		}
		fmt.Println()
	}

	fmt.Println("Example usage:")
	fmt.Println("  SOLARBOM_STRINGS=2 solarbom calculate roof.txt")
	fmt.Println("  SOLARBOM_LOG_LEVEL=debug solarbom calculate roof.txt")
	fmt.Println("  SOLARBOM_CONFIG_PATH=/etc/solarbom/config.yaml solarbom rules")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	result, err := config.LoadConfigWithDetails(projectDir)
	if err != nil {
		return err
	}
	if !result.UsedDefaults && !configForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", result.ConfigPath)
	}
	if err := config.DefaultConfig().Save(projectDir); err != nil {
		return err
	}
	fmt.Println("Wrote .solarbom/config.json")
	return nil
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func isEqual(a, b interface{}) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func computeDiff(current, defaults map[string]interface{}) map[string]interface{} {
	diff := make(map[string]interface{})
	for key, currentVal := range current {
		defaultVal, exists := defaults[key]
		if !exists {
			diff[key] = currentVal
			continue
		}

		currentMap, currentIsMap := currentVal.(map[string]interface{})
		defaultMap, defaultIsMap := defaultVal.(map[string]interface{})
		if currentIsMap && defaultIsMap {
			if nested := computeDiff(currentMap, defaultMap); len(nested) > 0 {
				diff[key] = nested
			}
		} else if !isEqual(currentVal, defaultVal) {
			diff[key] = currentVal
		}
	}
	return diff
}
