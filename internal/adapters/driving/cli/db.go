package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/joblistings/internal/core/domain"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Create and populate the listings database",
}

var dbCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the listing tables if they do not exist",
	Args:  cobra.NoArgs,
	RunE:  runDBCreate,
}

var dbPopulateCmd = &cobra.Command{
	Use:   "populate [file]...",
	Short: "Load normalised files into the database",
	Long: `Inserts every record of the given normalised files in one transaction.
Records whose id is already stored are left untouched. Any unreadable line
or record missing a shared field aborts the load without writing anything.

Each file needs a source tag. Pass it explicitly with --source tag=path,
or pass a bare path named after the source: the file name without its
extension and "_normalized" suffix must equal the tag, for example
rapid_results_normalized.json (rapid_jobs2 is read as rapid_jobs). Any
other name, such as rapid_results_2024.json, needs --source.`,
	RunE: runDBPopulate,
}

var populateSources []string

func init() {
	dbPopulateCmd.Flags().StringArrayVarP(&populateSources, "source", "s", nil,
		"source file as tag=path (repeatable)")

	dbCmd.AddCommand(dbCreateCmd)
	dbCmd.AddCommand(dbPopulateCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBCreate(cmd *cobra.Command, _ []string) error {
	if err := services.Loader.CreateDatabase(cmd.Context(), settings.Database); err != nil {
		return err
	}
	cmd.Printf("%s %s\n", style.Success.Render("created"), settings.Database)
	return nil
}

func runDBPopulate(cmd *cobra.Command, args []string) error {
	files, err := sourceFiles(populateSources, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no files to load", domain.ErrInvalidInput)
	}

	stats, err := services.Loader.PopulateDatabase(cmd.Context(), settings.Database, files)
	if err != nil {
		return err
	}
	printLoadStats(cmd, settings.Database, stats)
	return nil
}

// sourceFiles combines tag=path flag values with bare paths whose source is
// taken from the file name.
func sourceFiles(tagged, paths []string) ([]domain.SourceFile, error) {
	files := make([]domain.SourceFile, 0, len(tagged)+len(paths))
	for _, value := range tagged {
		tag, path, ok := strings.Cut(value, "=")
		if !ok || path == "" {
			return nil, fmt.Errorf("%w: --source %q must be tag=path", domain.ErrInvalidInput, value)
		}
		source, err := domain.ParseSourceTag(tag)
		if err != nil {
			return nil, err
		}
		files = append(files, domain.SourceFile{Path: path, Source: source})
	}
	for _, path := range paths {
		source, err := domain.ParseSourceTag(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w (use --source tag=path)", path, err)
		}
		files = append(files, domain.SourceFile{Path: path, Source: source})
	}
	return files, nil
}

func printLoadStats(cmd *cobra.Command, database string, stats *domain.LoadStats) {
	cmd.Printf("%s %s: %d records read, %d inserted, %d already present\n",
		style.Success.Render("populated"), database,
		stats.RecordsRead, stats.ListingsInserted, stats.ListingsIgnored)
	if stats.UniqueInserted+stats.UniqueIgnored > 0 {
		cmd.Println(style.Muted.Render(fmt.Sprintf("  source-specific rows: %d inserted, %d already present",
			stats.UniqueInserted, stats.UniqueIgnored)))
	}
}
