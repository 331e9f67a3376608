package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/member-form/internal/observability"
)

var (
	positionsFile   string
	positionsSearch string
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List the job position catalog",
	RunE:  runPositions,
}

func init() {
	positionsCmd.Flags().StringVarP(&positionsFile, "file", "f", "", "Path to a job positions JSON file (built-in list when empty)")
	positionsCmd.Flags().StringVarP(&positionsSearch, "search", "s", "", "Case-insensitive label filter")
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog(positionsFile)
	if err != nil {
		return err
	}

	positions := catalog.All()
	if positionsSearch != "" {
		positions = catalog.Search(positionsSearch)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintJobPositions(positions)
	return nil
}
