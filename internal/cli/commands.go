package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/search-agent/internal/search"
	"github.com/spf13/cobra"
)

// ServiceFunc builds the search service on first use, so --help works without
// credentials.
type ServiceFunc func(ctx context.Context) (*search.Service, error)

// NewRootCmd creates the search-agent command with its subcommands.
func NewRootCmd(newService ServiceFunc, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "search-agent",
		Short: "Search and fetch documents from the configured backend",
		Long: `search-agent runs the same search and fetch operations the MCP and HTTP
servers expose, against the backend selected by BACKEND (openai, static, redis).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewSearchCmd(newService))
	rootCmd.AddCommand(NewFetchCmd(newService))

	return rootCmd
}

// NewSearchCmd creates the 'search' command.
func NewSearchCmd(newService ServiceFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents",
		Example: `  search-agent search "reset password"
  search-agent search "reset password" --limit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			results, err := svc.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return fmt.Errorf("search error: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Max results (default: SEARCH_LIMIT)")

	return cmd
}

// NewFetchCmd creates the 'fetch' command. Unknown ids are reported inline with
// error "not_found".
func NewFetchCmd(newService ServiceFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fetch <id>...",
		Short:   "Fetch full documents by id",
		Example: `  search-agent fetch file-abc123 file-def456`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := svc.FetchBatch(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("fetch error: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
