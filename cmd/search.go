package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alanpramil7/underdog/internal/output"
	"github.com/alanpramil7/underdog/internal/yt"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for underdog videos",
	Long: `Search YouTube for recent videos with few views from small channels.

Unset flags fall back to the search defaults in the config file.

Examples:
  underdog search "day trading"
  underdog search "indie games" --max-results 300 --days 3
  underdog search "woodworking" --max-views 50 --max-subs 200 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("max-results", "m", 0, "Maximum number of search results to scan (10-500)")
	searchCmd.Flags().Int("max-views", 0, "Keep videos with fewer views than this")
	searchCmd.Flags().Int("max-subs", 0, "Keep videos from channels with fewer subscribers than this")
	searchCmd.Flags().IntP("days", "d", 0, "Only videos posted in the last N days")
	searchCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	params, err := searchParams(cmd, args[0])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("invalid format %q: must be table or json", format)
	}

	pipeline, err := buildPipeline(cmd.Context(), log)
	if err != nil {
		return err
	}

	records, err := pipeline.Run(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("error performing search: %w", err)
	}

	if format == "json" {
		return output.WriteRecordsJSON(cmd.OutOrStdout(), params.Query, records)
	}

	printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output.Colors)
	if len(records) == 0 {
		printer.Warning("No results found with the given filters.")
		return nil
	}
	printer.Success("Found %d qualifying videos.", len(records))
	return output.WriteRecordsTable(cmd.OutOrStdout(), records)
}

// searchParams merges explicitly set flags over the configured defaults
func searchParams(cmd *cobra.Command, query string) (yt.QueryParameters, error) {
	params := cfg.Search.Defaults()
	params.Query = query

	flags := cmd.Flags()
	for name, dst := range map[string]*int{
		"max-results": &params.MaxResults,
		"max-views":   &params.MaxViews,
		"max-subs":    &params.MaxSubs,
		"days":        &params.DaysAgo,
	} {
		if flags.Changed(name) {
			v, err := flags.GetInt(name)
			if err != nil {
				return params, err
			}
			*dst = v
		}
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}
