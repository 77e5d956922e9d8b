package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"solarbom/internal/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	Args:  cobra.NoArgs,
	// No config needed to report the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSON {
			out, err := FormatResponse(version.Get(), FormatJSON)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}
		fmt.Println(version.Full())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(versionCmd)
}
