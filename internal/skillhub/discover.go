package skillhub

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
	"github.com/crystaldolphin/skillhub/internal/skills"
)

// DiscoveredSkill is a directory holding a SKILL.md, found under a source.
type DiscoveredSkill struct {
	Dir  string
	Name string // frontmatter name; "" when absent
}

// prunedDirs are never descended into while discovering skills.
var prunedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	"target":       true,
	".venv":        true,
	"venv":         true,
}

// Discover returns every directory under root that contains a SKILL.md, in
// walk order. root itself may be a symlink; symlinks below it are not
// followed. Reported directories stay under root as given.
func Discover(root string) ([]DiscoveredSkill, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, schema.FilesystemError("resolve", root, err)
	}
	walkRoot, err := followRoot(abs)
	if err != nil {
		return nil, err
	}

	var found []DiscoveredSkill
	seen := make(map[string]bool)
	record := func(dir string) error {
		key := canonicalPath(dir)
		if seen[key] {
			return nil
		}
		seen[key] = true
		name, err := readSkillName(filepath.Join(dir, skills.ManifestFile))
		if err != nil {
			return err
		}
		found = append(found, DiscoveredSkill{Dir: dir, Name: name})
		return nil
	}

	if info, err := os.Stat(filepath.Join(abs, skills.ManifestFile)); err == nil && info.Mode().IsRegular() {
		if err := record(abs); err != nil {
			return nil, err
		}
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return schema.FilesystemError("walk", path, err)
		}
		if d.IsDir() {
			if path != walkRoot && prunedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || d.Name() != skills.ManifestFile {
			return nil
		}
		rel, err := filepath.Rel(walkRoot, filepath.Dir(path))
		if err != nil {
			return schema.FilesystemError("resolve", path, err)
		}
		return record(filepath.Join(abs, rel))
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func canonicalPath(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return filepath.Clean(dir)
}

func readSkillName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", schema.FilesystemError("read", path, err)
	}
	fm, _, err := skills.ParseManifest(string(data))
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(fm.Name), nil
}

// SortForListing orders skills by name with unnamed skills last, then by
// directory.
func SortForListing(found []DiscoveredSkill) []DiscoveredSkill {
	out := slices.Clone(found)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Name == "") != (b.Name == "") {
			return a.Name != ""
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Dir < b.Dir
	})
	return out
}

// FilterSkills keeps the skills whose directory name or frontmatter name
// matches one of filters. No filters, or a "*" filter, keeps everything.
func FilterSkills(found []DiscoveredSkill, filters []string) []DiscoveredSkill {
	normalized := NormalizeFilters(filters)
	if len(normalized) == 0 || slices.Contains(normalized, "*") {
		return found
	}

	var out []DiscoveredSkill
	for _, s := range found {
		dirName := strings.ToLower(filepath.Base(s.Dir))
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if slices.Contains(normalized, dirName) || (name != "" && slices.Contains(normalized, name)) {
			out = append(out, s)
		}
	}
	return out
}
