package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/joblistings/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/joblistings/internal/core/domain"
)

var style = styles.DefaultStyles()

var normaliseCmd = &cobra.Command{
	Use:     "normalise <file>...",
	Aliases: []string{"normalize"},
	Short:   "Normalise raw JSON-lines exports",
	Long: `Rewrites each raw export into the canonical record shape. The output
is written next to the input with a "_normalized" suffix. Lines that cannot
be parsed are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalise,
}

func init() {
	rootCmd.AddCommand(normaliseCmd)
}

func runNormalise(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		report, err := services.Ingest.NormaliseFile(cmd.Context(), path)
		if err != nil {
			cmd.PrintErrln(style.Error.Render(fmt.Sprintf("%s: %v", path, err)))
			failed++
			continue
		}
		printIngestReport(cmd, report)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be normalised", failed, len(args))
	}
	return nil
}

func printIngestReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("%s -> %s: %d records from %d lines\n",
		report.Source, report.Output, report.RecordsWritten, report.LinesRead)
	for _, lineErr := range report.Errors {
		cmd.Println(style.Warning.Render("  skipped " + lineErr.Error()))
	}
}
