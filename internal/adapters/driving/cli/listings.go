package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Show the listings stored in the database",
	Long: `Prints every row of the shared listings table sorted by id. With --json
the rows are printed as one object keyed by id, each holding job_title,
company, location, date_posted, description, employment_type, interval,
compensation and job_url.`,
	Args: cobra.NoArgs,
	RunE: runListings,
}

var listingsJSON bool

func init() {
	listingsCmd.Flags().BoolVar(&listingsJSON, "json", false, "print rows as JSON keyed by id")
	rootCmd.AddCommand(listingsCmd)
}

func runListings(cmd *cobra.Command, _ []string) error {
	listings, err := services.Loader.Listings(cmd.Context(), settings.Database)
	if err != nil {
		return err
	}

	if listingsJSON {
		view := make(map[string]map[string]string, len(listings))
		for id, l := range listings {
			view[id] = l.PresentationView()
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	if len(listings) == 0 {
		cmd.Println(style.Muted.Render("no listings"))
		return nil
	}
	for _, id := range slices.Sorted(maps.Keys(listings)) {
		l := listings[id]
		cmd.Printf("%s  %s\n", style.Subtitle.Render(id), l.Title)
		cmd.Println(style.Muted.Render(fmt.Sprintf("    %s | %s | %s", l.Company, l.Location, l.Compensation)))
	}
	cmd.Println(style.Muted.Render(fmt.Sprintf("%d listings", len(listings))))
	return nil
}
