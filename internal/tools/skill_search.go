package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/skillhub"
)

const defaultSkillSearchLimit = 10

// SkillSearcher queries the skill registry and the community catalog.
type SkillSearcher interface {
	SearchAll(ctx context.Context, query string, limit int) (*skillhub.SearchResults, error)
}

// SkillSearchTool lets the agent look up installable skills.
type SkillSearchTool struct {
	searcher SkillSearcher
	limit    int
}

// NewSkillSearchTool creates a SkillSearchTool. limit <= 0 means 10.
func NewSkillSearchTool(searcher SkillSearcher, limit int) *SkillSearchTool {
	if limit <= 0 {
		limit = defaultSkillSearchLimit
	}
	return &SkillSearchTool{searcher: searcher, limit: skillhub.NormalizeLimit(limit)}
}

func (t *SkillSearchTool) Name() string { return string(ToolSkillSearch) }
func (t *SkillSearchTool) Description() string {
	return "Search the skill registry and the skills.sh catalog for installable skills."
}

func (t *SkillSearchTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "What the skill should do"
			},
			"limit": {
				"type": "integer",
				"description": "Results per source (1-100)",
				"minimum": 1,
				"maximum": 100
			}
		},
		"required": ["query"]
	}`)
}

func (t *SkillSearchTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	query, _ := params["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return "Error: query is required", nil
	}
	limit := t.limit
	if n, ok := intParam(params, "limit"); ok {
		limit = skillhub.NormalizeLimit(n)
	}

	res, err := t.searcher.SearchAll(ctx, query, limit)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	return FormatSearchResults(query, res), nil
}

// FormatSearchResults renders both result sets as plain text.
func FormatSearchResults(query string, res *skillhub.SearchResults) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Skill search results for: %s\n", query)

	sb.WriteString("\n## Registry\n")
	switch {
	case res.RegistryErr != nil:
		fmt.Fprintf(&sb, "Search failed: %v\n", res.RegistryErr)
	case len(res.Registry) == 0:
		sb.WriteString("No results.\n")
	default:
		for i, r := range res.Registry {
			title := r.Slug
			if r.DisplayName != "" && r.DisplayName != r.Slug {
				title = fmt.Sprintf("%s (%s)", r.DisplayName, r.Slug)
			}
			if r.Version != "" {
				title += " v" + r.Version
			}
			fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
			if r.Summary != "" {
				fmt.Fprintf(&sb, "   %s\n", r.Summary)
			}
		}
	}

	sb.WriteString("\n## skills.sh\n")
	switch {
	case res.CatalogErr != nil:
		fmt.Fprintf(&sb, "Search failed: %v\n", res.CatalogErr)
	case len(res.Catalog) == 0:
		sb.WriteString("No results.\n")
	default:
		for i, r := range res.Catalog {
			fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, r.Name, r.Slug)
			fmt.Fprintf(&sb, "   source: %s, installs: %d\n", r.Source, r.Installs)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
