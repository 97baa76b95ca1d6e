package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driving"
)

var runCmd = &cobra.Command{
	Use:   "run [file]...",
	Short: "Normalise, audit and load in one pass",
	Long: `Runs the whole pipeline: every source is normalised, the normalised
files are optionally audited, then the database is created and populated.

Sources come from the [[sources]] entries of the config file, followed by
any --source tag=path flags and bare paths given on the command line. A bare
path must be named after its source, as in rapid_jobs2.json.`,
	RunE: runPipeline,
}

var (
	runSources   []string
	runWithAudit bool
)

func init() {
	runCmd.Flags().StringArrayVarP(&runSources, "source", "s", nil,
		"raw source file as tag=path (repeatable)")
	runCmd.Flags().BoolVar(&runWithAudit, "audit", false,
		"print the key audit of the normalised files")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	extra, err := sourceFiles(runSources, args)
	if err != nil {
		return err
	}
	sources := append(append([]domain.SourceFile(nil), settings.Sources...), extra...)

	result, err := services.Pipeline.Run(cmd.Context(), driving.PipelineRequest{
		Sources:  sources,
		Database: settings.Database,
		Audit:    settings.Audit || runWithAudit,
	})
	if result != nil {
		cmd.Println(style.Muted.Render("run " + result.RunID))
		for _, report := range result.Reports {
			printIngestReport(cmd, report)
		}
		if skipped := len(sources) - len(result.Reports); skipped > 0 && err == nil {
			cmd.Println(style.Warning.Render(fmt.Sprintf("%d source(s) skipped", skipped)))
		}
		if result.Audit != nil {
			cmd.Println()
			printAudit(cmd, *result.Audit)
			cmd.Println()
		}
		if result.Stats != nil {
			printLoadStats(cmd, settings.Database, result.Stats)
		}
	}
	return err
}
