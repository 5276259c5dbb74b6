// Package skillhub resolves skill sources, fetches them from git, local
// directories or the skill registry, and installs the skills they contain.
package skillhub

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

const catalogInstallSearchLimit = 25

// InstalledSkill is a skill written to a skills root.
type InstalledSkill struct {
	InstallName string `json:"installName"`
	Path        string `json:"path"`
	Source      string `json:"source"`
	Version     string `json:"version,omitempty"`
}

// SourceSkill is a skill found in a source without installing it.
type SourceSkill struct {
	Directory string `json:"directory"`
	Name      string `json:"name,omitempty"`
}

// RegistryInstallRequest installs one skill by registry slug.
type RegistryInstallRequest struct {
	Slug       string
	Version    string
	Tag        string
	SkillsRoot string
	Force      bool
}

// SourceInstallRequest installs the skills found in a source address.
type SourceInstallRequest struct {
	Source       string
	SkillFilters []string
	SkillsRoot   string
	Force        bool
}

// CatalogInstallRequest resolves a community catalog entry and installs it.
type CatalogInstallRequest struct {
	SlugOrQuery string
	SkillsRoot  string
	Force       bool
}

// Hub installs skills from the registry, the community catalog and git or
// local sources.
type Hub struct {
	client   *Client
	acquirer *Acquirer
}

// NewHub creates a Hub.
func NewHub(client *Client, acquirer *Acquirer) *Hub {
	return &Hub{client: client, acquirer: acquirer}
}

// Client returns the search client used by the hub.
func (h *Hub) Client() *Client { return h.client }

// InstallFromRegistry downloads a registry archive into SkillsRoot/<slug>.
func (h *Hub) InstallFromRegistry(ctx context.Context, req RegistryInstallRequest) (InstalledSkill, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return InstalledSkill{}, schema.ValidationError("slug cannot be empty")
	}
	if err := ensureDir(req.SkillsRoot); err != nil {
		return InstalledSkill{}, err
	}

	name := SanitizeName(slug)
	target := filepath.Join(req.SkillsRoot, name)
	if err := PrepareTarget(target, req.Force); err != nil {
		return InstalledSkill{}, err
	}

	data, err := h.client.Download(ctx, slug, req.Version, req.Tag)
	if err == nil {
		err = h.acquirer.Unpack(data, target)
	}
	if err != nil {
		removePartial(target)
		return InstalledSkill{}, err
	}

	slog.Info("installed skill from registry", "slug", slug, "path", target)
	return InstalledSkill{
		InstallName: name,
		Path:        target,
		Source:      "clawhub:" + slug,
		Version:     strings.TrimSpace(req.Version),
	}, nil
}

// InstallFromSource installs every skill in a source that matches the
// request filters and the filter embedded in the source address. Skills
// installed before a failure stay on disk.
func (h *Hub) InstallFromSource(ctx context.Context, req SourceInstallRequest) ([]InstalledSkill, error) {
	src, err := ParseSource(req.Source)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(req.SkillsRoot); err != nil {
		return nil, err
	}

	filters := make([]string, 0, len(req.SkillFilters)+1)
	for _, f := range req.SkillFilters {
		if f = strings.TrimSpace(f); f != "" {
			filters = append(filters, f)
		}
	}
	if src.SkillFilter != "" {
		filters = append(filters, src.SkillFilter)
	}

	checkout, err := h.acquirer.Acquire(ctx, src)
	if err != nil {
		return nil, err
	}
	defer checkout.Release()

	found, err := discoverIn(checkout, src)
	if err != nil {
		return nil, err
	}
	selected := FilterSkills(found, filters)
	if len(selected) == 0 {
		return nil, schema.ValidationError("no skills matched filters: %s", strings.Join(filters, ", "))
	}

	used := make(map[string]struct{})
	installed := make([]InstalledSkill, 0, len(selected))
	for _, skill := range selected {
		name := UniqueName(installBaseName(skill), used)
		target := filepath.Join(req.SkillsRoot, name)

		if err := PrepareTarget(target, req.Force); err != nil {
			return installed, err
		}
		if err := copySkill(skill.Dir, target); err != nil {
			return installed, err
		}

		slog.Info("installed skill from source", "source", src.Original, "name", name, "path", target)
		installed = append(installed, InstalledSkill{
			InstallName: name,
			Path:        target,
			Source:      src.Original,
		})
	}
	return installed, nil
}

// InstallFromCatalog searches the community catalog and installs the best
// match: an exact slug, then an exact name, then the top result.
func (h *Hub) InstallFromCatalog(ctx context.Context, req CatalogInstallRequest) ([]InstalledSkill, error) {
	query := strings.TrimSpace(req.SlugOrQuery)
	if query == "" {
		return nil, schema.ValidationError("slug_or_query cannot be empty")
	}

	results, err := h.client.SearchCatalog(ctx, query, catalogInstallSearchLimit)
	if err != nil {
		return nil, err
	}
	selected, ok := selectCatalogResult(results, query)
	if !ok {
		return nil, schema.NewSkillError(schema.KindNotFound, "no skills.sh results found for query: %s", query)
	}

	source := strings.TrimSpace(selected.Source)
	if source == "" {
		source = selected.Slug
	}
	slog.Debug("resolved catalog entry", "query", query, "slug", selected.Slug, "source", source)

	return h.InstallFromSource(ctx, SourceInstallRequest{
		Source:       source,
		SkillFilters: []string{selected.Name},
		SkillsRoot:   req.SkillsRoot,
		Force:        req.Force,
	})
}

func selectCatalogResult(results []CatalogResult, query string) (CatalogResult, bool) {
	if len(results) == 0 {
		return CatalogResult{}, false
	}
	for _, r := range results {
		if strings.EqualFold(r.Slug, query) {
			return r, true
		}
	}
	for _, r := range results {
		if strings.EqualFold(r.Name, query) {
			return r, true
		}
	}
	return results[0], true
}

// ListSource lists the skills a source provides without installing them.
func (h *Hub) ListSource(ctx context.Context, source string) ([]SourceSkill, error) {
	src, err := ParseSource(source)
	if err != nil {
		return nil, err
	}
	checkout, err := h.acquirer.Acquire(ctx, src)
	if err != nil {
		return nil, err
	}
	defer checkout.Release()

	found, err := discoverIn(checkout, src)
	if err != nil {
		return nil, err
	}

	sorted := SortForListing(found)
	out := make([]SourceSkill, len(sorted))
	for i, s := range sorted {
		out[i] = SourceSkill{Directory: filepath.Base(s.Dir), Name: s.Name}
	}
	return out, nil
}

func discoverIn(checkout *Checkout, src SourceAddress) ([]DiscoveredSkill, error) {
	root := checkout.Root
	if src.Subpath != "" {
		root = filepath.Join(root, filepath.FromSlash(src.Subpath))
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, &schema.SkillError{
			Kind:    schema.KindSourceResolution,
			Message: fmt.Sprintf("source subpath does not exist: %s", root),
			Path:    root,
		}
	}

	found, err := Discover(root)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, schema.SourceResolutionError("no SKILL.md files found in source: %s", src.Original)
	}
	return found, nil
}

// copySkill fills a prepared target and removes it again on failure.
func copySkill(src, target string) error {
	err := CopyDirectory(src, target)
	if err == nil {
		err = EnsureManifest(target)
	}
	if err != nil {
		removePartial(target)
	}
	return err
}

func removePartial(target string) {
	if err := os.RemoveAll(target); err != nil {
		slog.Warn("failed to remove partial install", "path", target, "err", err)
	}
}

func installBaseName(skill DiscoveredSkill) string {
	if name := strings.TrimSpace(skill.Name); name != "" {
		return SanitizeName(name)
	}
	base := filepath.Base(skill.Dir)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "skill"
	}
	return SanitizeName(base)
}
