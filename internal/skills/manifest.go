package skills

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the file that marks a directory as a skill.
const ManifestFile = "SKILL.md"

// ErrNoFrontmatter is returned when a manifest has no usable YAML header.
var ErrNoFrontmatter = errors.New("missing frontmatter")

// Frontmatter is the YAML header of a SKILL.md file.
type Frontmatter struct {
	Name          string        `yaml:"name"`
	Description   string        `yaml:"description"`
	Platforms     stringList    `yaml:"platforms"`
	Deps          stringList    `yaml:"deps"`
	Compatibility compatibility `yaml:"compatibility"`
	Source        string        `yaml:"source"`
	Version       string        `yaml:"version"`
	UpdatedAt     string        `yaml:"updated_at"`
}

type compatibility struct {
	OS   stringList `yaml:"os"`
	Deps stringList `yaml:"deps"`
}

// stringList accepts either a YAML sequence or a single scalar.
type stringList []string

func (l *stringList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*l = stringList{n.Value}
		return nil
	}
	var items []string
	if err := n.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// SplitFrontmatter separates the YAML header from the markdown body.
// The header opens with a "---" line and closes with "---" or "...".
// ok is false when there is no header or it is blank.
func SplitFrontmatter(content string) (header, body string, ok bool) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(content, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", "", false
	}
	for i := 1; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if t != "---" && t != "..." {
			continue
		}
		header = strings.Join(lines[1:i], "\n")
		if strings.TrimSpace(header) == "" {
			return "", "", false
		}
		body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		return header, body, true
	}
	return "", "", false
}

// ParseManifest decodes the frontmatter of a SKILL.md and returns it with the
// trimmed body.
func ParseManifest(content string) (Frontmatter, string, error) {
	header, body, ok := SplitFrontmatter(content)
	if !ok {
		return Frontmatter{}, "", ErrNoFrontmatter
	}
	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, body, nil
}
