package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"solarbom/internal/bom"
	"solarbom/internal/classify"
)

// CurrentVersion is the config schema version written by this build.
const CurrentVersion = 1

// DirName is the per-project configuration directory.
const DirName = ".solarbom"

// Config represents the complete solarbom configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`
	// ReferenceData is an optional TOML file with prices and lookup tables.
	// Relative paths resolve against the project directory.
	ReferenceData string `json:"referenceData" mapstructure:"referenceData"`

	Defaults   DefaultsConfig   `json:"defaults" mapstructure:"defaults"`
	Rules      RulesConfig      `json:"rules" mapstructure:"rules"`
	Classifier ClassifierConfig `json:"classifier" mapstructure:"classifier"`
	Output     OutputConfig     `json:"output" mapstructure:"output"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// DefaultsConfig holds values used when the CLI flags are omitted
type DefaultsConfig struct {
	PanelType string `json:"panelType" mapstructure:"panelType"`
	Strings   int    `json:"strings" mapstructure:"strings"`
}

// RulesConfig selects the BOM formula variants
type RulesConfig struct {
	SealRoll  string `json:"sealRoll" mapstructure:"sealRoll"`
	CableTies string `json:"cableTies" mapstructure:"cableTies"`
	DeepLead  string `json:"deepLead" mapstructure:"deepLead"`
}

// ClassifierConfig selects how corner tags are assigned
type ClassifierConfig struct {
	Mode string `json:"mode" mapstructure:"mode"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
	File   string `json:"file,omitempty" mapstructure:"file"`
}

// OutputFormats lists the accepted output formats.
var OutputFormats = []string{"human", "json", "checklist", "csv", "markdown"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	rules := bom.DefaultRules()
	return &Config{
		Version: CurrentVersion,
		Defaults: DefaultsConfig{
			PanelType: "DMEGC 405w",
			Strings:   1,
		},
		Rules: RulesConfig{
			SealRoll:  string(rules.SealRoll),
			CableTies: string(rules.CableTies),
			DeepLead:  string(rules.DeepLead),
		},
		Classifier: ClassifierConfig{
			Mode: string(classify.ModeAdditive),
		},
		Output: OutputConfig{
			Format: "human",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "warn",
		},
	}
}

// BomRules converts the rule names into bom.Rules.
func (c *Config) BomRules() (bom.Rules, error) {
	return bom.ParseRules(c.Rules.SealRoll, c.Rules.CableTies, c.Rules.DeepLead)
}

// ClassifierMode converts the configured mode name.
func (c *Config) ClassifierMode() (classify.Mode, error) {
	return classify.ParseMode(c.Classifier.Mode)
}

// ReferenceDataPath resolves ReferenceData against dir.
func (c *Config) ReferenceDataPath(dir string) string {
	if c.ReferenceData == "" || filepath.IsAbs(c.ReferenceData) {
		return c.ReferenceData
	}
	return filepath.Join(dir, c.ReferenceData)
}

// EnvOverride records one environment variable applied on top of the file config.
type EnvOverride struct {
	EnvVar string `json:"envVar"`
	Path   string `json:"path"`
	Value  string `json:"value"`
}

// LoadResult describes where the effective configuration came from.
type LoadResult struct {
	Config       *Config       `json:"config"`
	ConfigPath   string        `json:"configPath,omitempty"`
	UsedDefaults bool          `json:"usedDefaults"`
	EnvOverrides []EnvOverride `json:"envOverrides,omitempty"`
}

// envKind is the value type of an overridable field.
type envKind int

const (
	envString envKind = iota
	envInt
)

type envMapping struct {
	path string
	kind envKind
}

// envVarMappings maps SOLARBOM_* variables to config paths.
var envVarMappings = map[string]envMapping{
	"SOLARBOM_REFERENCE_DATA":  {"referenceData", envString},
	"SOLARBOM_PANEL_TYPE":      {"defaults.panelType", envString},
	"SOLARBOM_STRINGS":         {"defaults.strings", envInt},
	"SOLARBOM_SEAL_ROLL_RULE":  {"rules.sealRoll", envString},
	"SOLARBOM_CABLE_TIES_RULE": {"rules.cableTies", envString},
	"SOLARBOM_DEEP_LEAD_RULE":  {"rules.deepLead", envString},
	"SOLARBOM_CLASSIFIER_MODE": {"classifier.mode", envString},
	"SOLARBOM_OUTPUT_FORMAT":   {"output.format", envString},
	"SOLARBOM_LOG_FORMAT":      {"logging.format", envString},
	"SOLARBOM_LOG_LEVEL":       {"logging.level", envString},
	"SOLARBOM_LOG_FILE":        {"logging.file", envString},
}

// ConfigPathEnvVar names an explicit config file, bypassing the search.
const ConfigPathEnvVar = "SOLARBOM_CONFIG_PATH"

// GetSupportedEnvVars lists every recognised environment variable, sorted.
func GetSupportedEnvVars() []string {
	vars := make([]string, 0, len(envVarMappings)+1)
	vars = append(vars, ConfigPathEnvVar)
	for name := range envVarMappings {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

// LoadConfig loads configuration from <dir>/.solarbom/config.{json,yaml,toml}
// and applies environment overrides.
func LoadConfig(dir string) (*Config, error) {
	result, err := LoadConfigWithDetails(dir)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

// LoadConfigWithDetails loads configuration and reports its provenance.
func LoadConfigWithDetails(dir string) (*LoadResult, error) {
	result := &LoadResult{}

	if explicit := os.Getenv(ConfigPathEnvVar); explicit != "" {
		cfg, err := loadConfigFromPath(explicit)
		if err != nil {
			return nil, err
		}
		result.Config = cfg
		result.ConfigPath = explicit
	} else {
		v := newViper()
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(dir, DirName))

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, &ConfigError{Field: "file", Message: err.Error()}
			}
			result.Config = DefaultConfig()
			result.UsedDefaults = true
		} else {
			cfg, err := unmarshal(v)
			if err != nil {
				return nil, err
			}
			result.Config = cfg
			result.ConfigPath = v.ConfigFileUsed()
		}
	}

	result.EnvOverrides = applyEnvOverrides(result.Config)
	return result, nil
}

// loadConfigFromPath reads one config file; the format follows its extension.
func loadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	return unmarshal(v)
}

// newViper returns a viper instance seeded with DefaultConfig, so keys missing
// from the file keep their defaults.
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("referenceData", d.ReferenceData)
	v.SetDefault("defaults.panelType", d.Defaults.PanelType)
	v.SetDefault("defaults.strings", d.Defaults.Strings)
	v.SetDefault("rules.sealRoll", d.Rules.SealRoll)
	v.SetDefault("rules.cableTies", d.Rules.CableTies)
	v.SetDefault("rules.deepLead", d.Rules.DeepLead)
	v.SetDefault("classifier.mode", d.Classifier.Mode)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Field: "file", Message: err.Error()}
	}
	return &cfg, nil
}

// applyEnvOverrides applies SOLARBOM_* variables in name order. Values that
// fail to parse are skipped.
func applyEnvOverrides(cfg *Config) []EnvOverride {
	names := make([]string, 0, len(envVarMappings))
	for name := range envVarMappings {
		names = append(names, name)
	}
	sort.Strings(names)

	var overrides []EnvOverride
	for _, name := range names {
		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			continue
		}
		m := envVarMappings[name]

		var value interface{} = raw
		if m.kind == envInt {
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			value = n
		}
		if applyOverride(cfg, m.path, value) {
			overrides = append(overrides, EnvOverride{EnvVar: name, Path: m.path, Value: raw})
		}
	}
	return overrides
}

// applyOverride sets the field at a dotted path. It returns false for unknown
// paths or mismatched value types.
func applyOverride(cfg *Config, path string, value interface{}) bool {
	switch v := value.(type) {
	case string:
		var target *string
		switch path {
		case "referenceData":
			target = &cfg.ReferenceData
		case "defaults.panelType":
			target = &cfg.Defaults.PanelType
		case "rules.sealRoll":
			target = &cfg.Rules.SealRoll
		case "rules.cableTies":
			target = &cfg.Rules.CableTies
		case "rules.deepLead":
			target = &cfg.Rules.DeepLead
		case "classifier.mode":
			target = &cfg.Classifier.Mode
		case "output.format":
			target = &cfg.Output.Format
		case "logging.format":
			target = &cfg.Logging.Format
		case "logging.level":
			target = &cfg.Logging.Level
		case "logging.file":
			target = &cfg.Logging.File
		default:
			return false
		}
		*target = v
		return true
	case int:
		if path != "defaults.strings" {
			return false
		}
		cfg.Defaults.Strings = v
		return true
	default:
		return false
	}
}

// Save writes the configuration to <dir>/.solarbom/config.json
func (c *Config) Save(dir string) error {
	configDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, "config.json"), append(data, '\n'), 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.Defaults.Strings < 1 {
		return &ConfigError{Field: "defaults.strings", Message: "must be at least 1"}
	}
	if _, err := c.BomRules(); err != nil {
		return &ConfigError{Field: "rules", Message: err.Error()}
	}
	if _, err := c.ClassifierMode(); err != nil {
		return &ConfigError{Field: "classifier.mode", Message: err.Error()}
	}
	if !contains(OutputFormats, c.Output.Format) {
		return &ConfigError{Field: "output.format", Message: fmt.Sprintf("unknown format %q (want one of %s)", c.Output.Format, strings.Join(OutputFormats, ", "))}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q (want human or json)", c.Logging.Format)}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
