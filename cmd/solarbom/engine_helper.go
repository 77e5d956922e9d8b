package main

import (
	"io"
	"os"
	"strings"

	"solarbom/internal/bom"
	"solarbom/internal/classify"
	"solarbom/internal/errors"
	"solarbom/internal/grid"
	"solarbom/internal/pricing"
)

// Rule and classifier flags shared by calculate and rules. Empty values fall
// back to the configuration.
var (
	sealRollFlag   string
	cableTiesFlag  string
	deepLeadFlag   string
	classifierFlag string
)

// layoutFormatFlag selects how a layout read from stdin is decoded.
var layoutFormatFlag string

func flagOr(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

// resolveRules merges rule flags over the configured variants.
func resolveRules() (bom.Rules, error) {
	return bom.ParseRules(
		flagOr(sealRollFlag, appConfig.Rules.SealRoll),
		flagOr(cableTiesFlag, appConfig.Rules.CableTies),
		flagOr(deepLeadFlag, appConfig.Rules.DeepLead),
	)
}

// resolveClassifier merges the --classifier flag over the configured mode.
func resolveClassifier() (classify.Classifier, error) {
	mode, err := classify.ParseMode(flagOr(classifierFlag, appConfig.Classifier.Mode))
	if err != nil {
		return classify.Classifier{}, errors.Wrap(errors.InvalidConfig, err, "invalid classifier")
	}
	return classify.Classifier{Mode: mode}, nil
}

// loadReference reads the reference data named by --reference or the config.
func loadReference() (pricing.ReferenceData, error) {
	path := referenceFlag
	if path == "" {
		path = appConfig.ReferenceDataPath(projectDir)
	}
	if path != "" {
		logger.Info("Loading reference data", "path", path)
	}
	return pricing.LoadReferenceData(path)
}

// newEngine builds a BOM engine from the effective configuration and flags.
func newEngine() (*bom.Engine, error) {
	ref, err := loadReference()
	if err != nil {
		return nil, err
	}
	rules, err := resolveRules()
	if err != nil {
		return nil, err
	}
	classifier, err := resolveClassifier()
	if err != nil {
		return nil, err
	}

	opts := bom.OptionsFromReference(ref, rules)
	opts.Classifier = classifier
	opts.Logger = logger
	return bom.NewEngine(opts)
}

// readLayout loads the grid named by arg. "-" reads stdin in the format given
// by --layout-format.
func readLayout(arg string, stdin io.Reader) (grid.Grid, error) {
	if arg != "-" {
		return grid.ParseFile(arg)
	}

	format := grid.Format(strings.ToLower(layoutFormatFlag))
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidLayout, err, "failed to read layout from stdin")
	}
	return grid.Parse(data, format)
}

func stdinReader() io.Reader {
	return os.Stdin
}
