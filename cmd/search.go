package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/skillhub/internal/skillhub"
	"github.com/crystaldolphin/skillhub/internal/tools"
)

var (
	searchLimit  int
	searchSource string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the registry and the skills.sh catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Results per source (default from config)")
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "all", "Where to search: all, registry or catalog")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	limit := searchLimit
	if limit <= 0 {
		limit = c.Config().Hub.SearchLimit
	}
	client := c.Client()
	ctx := cmd.Context()

	res := &skillhub.SearchResults{}
	switch searchSource {
	case "all":
		res, err = client.SearchAll(ctx, query, limit)
	case "registry":
		res.Registry, err = client.SearchRegistry(ctx, query, limit)
	case "catalog":
		res.Catalog, err = client.SearchCatalog(ctx, query, limit)
	default:
		return fmt.Errorf("unknown --source %q (want all, registry or catalog)", searchSource)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		return writeJSON(out, map[string]any{
			"registry":      res.Registry,
			"registryError": errString(res.RegistryErr),
			"catalog":       res.Catalog,
			"catalogError":  errString(res.CatalogErr),
		})
	}
	fmt.Fprintln(out, tools.FormatSearchResults(query, res))
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
