// Package skills builds the runtime skill catalog from the local skills roots
// and serves activated skills to the agent.
package skills

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// Root tags for the fixed skills roots.
const (
	SourcePersonal  = "agents-personal"
	SourceProject   = "agents-project"
	SourceWorkspace = "workspace"
)

// Root is one directory holding skill subdirectories.
type Root struct {
	Path   string
	Source string
}

// PersonalRoot returns the personal skills root under home.
func PersonalRoot(home string) string {
	return filepath.Join(home, ".agents", "skills")
}

// WorkspaceRoots returns the fixed roots in precedence order, lowest first:
// the personal root, the project .agents root and the workspace skills
// directory. An empty personal omits that root; an empty install selects
// <workspace>/skills.
func WorkspaceRoots(workspace, personal, install string) []Root {
	if install == "" {
		install = filepath.Join(workspace, "skills")
	}
	var roots []Root
	if personal != "" {
		roots = append(roots, Root{Path: personal, Source: SourcePersonal})
	}
	return append(roots,
		Root{Path: filepath.Join(workspace, ".agents", "skills"), Source: SourceProject},
		Root{Path: install, Source: SourceWorkspace},
	)
}

// Manager merges the skills roots into a catalog. It keeps no cache: every
// call re-reads the roots, so a Manager is safe for concurrent use.
type Manager struct {
	roots    []Root
	platform string
	lookup   LookupFunc
}

// Option configures a Manager.
type Option func(*Manager)

// WithPlatform overrides the OS tag checked by the platform gate.
func WithPlatform(platform string) Option {
	return func(m *Manager) { m.platform = platform }
}

// WithLookup overrides executable resolution for the dependency gate.
func WithLookup(fn LookupFunc) Option {
	return func(m *Manager) { m.lookup = fn }
}

// NewManager creates a Manager over roots. Later roots take precedence.
func NewManager(roots []Root, opts ...Option) *Manager {
	m := &Manager{
		roots:    slices.Clone(roots),
		platform: CurrentPlatform(),
		lookup:   CommandExists,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Roots returns the configured roots in precedence order.
func (m *Manager) Roots() []Root { return slices.Clone(m.roots) }

// Platform returns the OS tag the manager gates against.
func (m *Manager) Platform() string { return m.platform }

// ListAvailable returns the gated catalog. An entry only enters the catalog
// if it passes both gates; a passing entry from a later root replaces an
// earlier one, and a failing entry never displaces anything.
func (m *Manager) ListAvailable() []schema.SkillMetadata {
	return m.merge(true)
}

// ListAll returns every parseable skill, the later root winning on a name
// clash regardless of gating.
func (m *Manager) ListAll() []schema.SkillMetadata {
	return m.merge(false)
}

func (m *Manager) merge(gated bool) []schema.SkillMetadata {
	byName := make(map[string]schema.SkillMetadata)
	for _, root := range m.roots {
		for _, meta := range scanRoot(root) {
			if gated && m.CheckGates(meta) != nil {
				continue
			}
			byName[strings.ToLower(meta.Name)] = meta
		}
	}

	out := make([]schema.SkillMetadata, 0, len(byName))
	for _, meta := range byName {
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CheckGates returns an availability error when meta cannot run here.
func (m *Manager) CheckGates(meta schema.SkillMetadata) error {
	if !platformAllowed(meta.Platforms, m.platform) {
		return schema.NewSkillError(schema.KindAvailability,
			"Skill '%s' is not available on this platform (current: %s, supported: %s).",
			meta.Name, m.platform, strings.Join(meta.Platforms, ", "))
	}
	if missing := missingDeps(meta.Deps, m.lookup); len(missing) > 0 {
		return schema.NewSkillError(schema.KindAvailability,
			"Skill '%s' is missing required dependencies: %s", meta.Name, strings.Join(missing, ", "))
	}
	return nil
}

// MissingDeps lists the declared dependencies of meta that do not resolve.
func (m *Manager) MissingDeps(meta schema.SkillMetadata) []string {
	return missingDeps(meta.Deps, m.lookup)
}

// Activate resolves name against every root and returns the selected skill
// with its instructions. Only the highest-precedence entry with that name is
// gate-checked; a lower-precedence entry is never substituted.
func (m *Manager) Activate(name string) (*schema.LoadedSkill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, schema.ValidationError("Skill name cannot be empty.")
	}

	all := m.ListAll()
	idx := slices.IndexFunc(all, func(s schema.SkillMetadata) bool {
		return strings.EqualFold(s.Name, name)
	})
	if idx < 0 {
		return nil, m.notFound(name)
	}
	meta := all[idx]

	if err := m.CheckGates(meta); err != nil {
		return nil, err
	}

	loaded, err := loadSkill(meta)
	if err != nil {
		slog.Debug("reloading skill manifest failed", "dir", meta.Dir, "err", err)
		return nil, &schema.SkillError{
			Kind:    schema.KindFilesystem,
			Message: fmt.Sprintf("Skill '%s' exists but could not be loaded.", name),
			Path:    meta.Dir,
		}
	}
	return loaded, nil
}

func loadSkill(meta schema.SkillMetadata) (*schema.LoadedSkill, error) {
	data, err := os.ReadFile(filepath.Join(meta.Dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	fresh, body, err := parseSkill(string(data), meta.Dir, meta.Source)
	if err != nil {
		return nil, err
	}
	return &schema.LoadedSkill{SkillMetadata: fresh, Body: body}, nil
}

func (m *Manager) notFound(name string) error {
	available := m.ListAvailable()
	if len(available) == 0 {
		return schema.NewSkillError(schema.KindNotFound,
			"Skill '%s' not found. No skills are currently available.", name)
	}
	names := make([]string, len(available))
	for i, s := range available {
		names[i] = s.Name
	}
	return schema.NewSkillError(schema.KindNotFound,
		"Skill '%s' not found. Available skills: %s", name, strings.Join(names, ", "))
}

// BuildCatalog renders the available skills for the system prompt, or "" when
// none are available.
func (m *Manager) BuildCatalog() string {
	available := m.ListAvailable()
	if len(available) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<available_skills>\n")
	for _, s := range available {
		fmt.Fprintf(&sb, "- %s: %s\n", s.Name, s.Description)
	}
	sb.WriteString("</available_skills>")
	return sb.String()
}

// scanRoot reads the direct child directories of root that hold a manifest.
func scanRoot(root Root) []schema.SkillMetadata {
	entries, err := os.ReadDir(root.Path)
	if err != nil {
		return nil
	}

	var out []schema.SkillMetadata
	for _, e := range entries {
		dir := filepath.Join(root.Path, e.Name())
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
		if err != nil {
			continue
		}
		meta, _, err := parseSkill(string(data), dir, root.Source)
		if err != nil {
			slog.Debug("skipping skill with unreadable manifest", "dir", dir, "err", err)
			continue
		}
		out = append(out, meta)
	}
	return out
}

func parseSkill(content, dir, defaultSource string) (schema.SkillMetadata, string, error) {
	fm, body, err := ParseManifest(content)
	if err != nil {
		return schema.SkillMetadata{}, "", err
	}

	name := strings.TrimSpace(fm.Name)
	if name == "" {
		name = filepath.Base(dir)
	}

	var platforms []string
	for _, p := range append(slices.Clone(fm.Platforms), fm.Compatibility.OS...) {
		if p = NormalizePlatform(p); p != "" {
			platforms = append(platforms, p)
		}
	}
	var deps []string
	for _, d := range append(slices.Clone(fm.Deps), fm.Compatibility.Deps...) {
		if d = strings.TrimSpace(d); d != "" {
			deps = append(deps, d)
		}
	}
	slices.Sort(platforms)
	slices.Sort(deps)

	source := strings.TrimSpace(fm.Source)
	if source == "" {
		source = defaultSource
	}

	return schema.SkillMetadata{
		Name:        name,
		Description: strings.TrimSpace(fm.Description),
		Dir:         dir,
		Platforms:   slices.Compact(platforms),
		Deps:        slices.Compact(deps),
		Source:      source,
		Version:     strings.TrimSpace(fm.Version),
		UpdatedAt:   strings.TrimSpace(fm.UpdatedAt),
	}, body, nil
}
