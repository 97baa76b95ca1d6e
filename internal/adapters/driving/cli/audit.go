package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

var auditCmd = &cobra.Command{
	Use:   "audit <file>...",
	Short: "Compare the top-level keys of normalised files",
	Long: `Lists the keys every file shares and, for each file, the keys no other
file has. Missing files and lines that are not JSON objects are reported
and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	audit := services.Audit.AuditKeys(cmd.Context(), args)
	printAudit(cmd, audit)
	return nil
}

func printAudit(cmd *cobra.Command, audit domain.KeyAudit) {
	cmd.Println(style.Title.Render("Shared keys"))
	cmd.Println(style.List(audit.Shared))
	for _, file := range audit.Files {
		cmd.Println()
		cmd.Println(style.Subtitle.Render("Unique keys in " + file.Path))
		cmd.Println(style.List(file.Unique))
	}
}
