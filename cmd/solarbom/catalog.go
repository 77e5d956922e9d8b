package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"solarbom/internal/config"
	"solarbom/internal/pricing"
	"solarbom/internal/tables"
)

var (
	catalogFormat   string
	catalogInitPath string
	catalogForce    bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and initialise price reference data",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show panel and component prices and the lookup tables",
	Long: `Display the effective reference data: panel prices, component prices,
the batten table and the lead meterage table.

Examples:
  solarbom catalog show
  solarbom catalog show --format json
  solarbom catalog show --reference prices.toml`,
	Args: cobra.NoArgs,
	RunE: runCatalogShow,
}

var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a reference data file with the default prices and tables",
	Long: `Write the built-in reference data to a TOML file that can be edited and
then selected with the referenceData config key or --reference.

Examples:
  solarbom catalog init                      # .solarbom/reference.toml
  solarbom catalog init --path prices.toml
  solarbom catalog init --force              # overwrite an existing file`,
	Args: cobra.NoArgs,
	RunE: runCatalogInit,
}

func init() {
	catalogShowCmd.Flags().StringVar(&catalogFormat, "format", "human", "Output format (human, json)")
	catalogInitCmd.Flags().StringVar(&catalogInitPath, "path", "", "Output file (default: .solarbom/reference.toml)")
	catalogInitCmd.Flags().BoolVar(&catalogForce, "force", false, "Overwrite an existing file")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogInitCmd)
	rootCmd.AddCommand(catalogCmd)
}

// ComponentPriceCLI is one component price in catalog order
type ComponentPriceCLI struct {
	Component string        `json:"component"`
	Price     pricing.Money `json:"price"`
}

// CatalogResponseCLI is the catalog show output
type CatalogResponseCLI struct {
	Source     string                   `json:"source"`
	Panels     map[string]pricing.Money `json:"panels"`
	PanelTypes []string                 `json:"-"`
	Components []ComponentPriceCLI      `json:"components"`
	Battens    tables.BattenTable       `json:"battens"`
	Lead       tables.LeadTable         `json:"lead"`
}

func newCatalogResponse(ref pricing.ReferenceData, source string) *CatalogResponseCLI {
	resp := &CatalogResponseCLI{
		Source:     source,
		Panels:     ref.Catalog.Panels,
		PanelTypes: ref.Catalog.PanelTypes(),
		Components: make([]ComponentPriceCLI, 0, pricing.NumComponents),
		Battens:    ref.Battens,
		Lead:       ref.Lead,
	}
	for _, c := range pricing.Components() {
		if c == pricing.SolarPanels {
			continue
		}
		resp.Components = append(resp.Components, ComponentPriceCLI{
			Component: c.Name(),
			Price:     ref.Catalog.ComponentPrice(c),
		})
	}
	return resp
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	ref, err := loadReference()
	if err != nil {
		return err
	}
	source := flagOr(referenceFlag, appConfig.ReferenceDataPath(projectDir))
	if source == "" {
		source = "built-in defaults"
	}
	out, err := FormatResponse(newCatalogResponse(ref, source), OutputFormat(catalogFormat))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runCatalogInit(cmd *cobra.Command, args []string) error {
	path := catalogInitPath
	if path == "" {
		path = filepath.Join(projectDir, config.DirName, "reference.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := pricing.SaveReferenceData(path, pricing.DefaultReferenceData(), catalogForce); err != nil {
		return err
	}
	logger.Info("Wrote reference data", "path", path)
	fmt.Printf("Wrote reference data to %s\n", path)
	fmt.Println("Set \"referenceData\" in .solarbom/config.json or pass --reference to use it.")
	return nil
}
