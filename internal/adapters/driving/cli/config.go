package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/joblistings/internal/core/domain"
	"github.com/custodia-labs/joblistings/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the config file",
	Long: `Reads and writes the TOML config file selected with --config
(default ~/.joblistings/config.toml).

Keys:
  database         SQLite path or postgres:// URL
  legacy_usa_trim  trim " USA" as a character set (true/false)
  audit            audit normalised files during run (true/false)

Sources are edited as [[sources]] tables in the file itself.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the config file values",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save the file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// isConfigCommand reports whether cmd only touches the config file and so
// needs no services.
func isConfigCommand(cmd *cobra.Command) bool {
	return cmd == configCmd || cmd.Parent() == configCmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config not loaded")
	}

	cmd.Println(style.Title.Render("Config"))
	cmd.Printf("  file:            %s\n", configStore.Path())
	cmd.Printf("  database:        %s\n", orDefault(configStore.GetString(driven.ConfigDatabase), "(not set)"))
	cmd.Printf("  legacy_usa_trim: %t\n", configStore.GetBool(driven.ConfigLegacyUSATrim))
	cmd.Printf("  audit:           %t\n", configStore.GetBool(driven.ConfigAudit))
	cmd.Println(style.Muted.Render("  effective database: " + settings.Database))

	sources, err := configStore.Sources()
	if err != nil {
		cmd.Println(style.Error.Render("  sources: " + err.Error()))
		return nil
	}
	if len(sources) == 0 {
		cmd.Println(style.Muted.Render("  no sources"))
		return nil
	}
	cmd.Println(style.Subtitle.Render("Sources"))
	for _, src := range sources {
		cmd.Printf("  %-14s %s\n", src.Source, src.Path)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config not loaded")
	}

	key, raw := args[0], args[1]
	value, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", configStore.Path(), err)
	}

	cmd.Printf("%s %s = %v\n", style.Success.Render("set"), key, value)
	return nil
}

// parseConfigValue converts raw to the type stored for key.
func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case driven.ConfigDatabase:
		if raw == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		return raw, nil
	case driven.ConfigLegacyUSATrim, driven.ConfigAudit:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, raw)
		}
		return b, nil
	case driven.ConfigSources:
		return nil, fmt.Errorf("%w: edit [[sources]] in the config file", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
