package skillhub

import (
	"path/filepath"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// SourceAddress is a parsed install source. Exactly one of GitURL and
// LocalPath is set.
type SourceAddress struct {
	Original    string
	GitURL      string
	LocalPath   string
	Ref         string
	Subpath     string
	SkillFilter string
}

// IsLocal reports whether the source points at a directory on disk.
func (s SourceAddress) IsLocal() bool { return s.LocalPath != "" }

// ParseSource classifies raw as a local path, an owner/repo shorthand, a
// GitHub web URL or, failing those, a raw git URL.
func ParseSource(raw string) (SourceAddress, error) {
	src := strings.TrimSpace(raw)
	if src == "" {
		return SourceAddress{}, schema.SourceResolutionError("source cannot be empty")
	}

	if isLocalPath(src) {
		return SourceAddress{Original: src, LocalPath: src}, nil
	}
	if parsed, ok := parseOwnerRepo(src); ok {
		return parsed, nil
	}
	if parsed, ok := parseGitHubURL(src); ok {
		return parsed, nil
	}
	return SourceAddress{Original: src, GitURL: src}, nil
}

func isLocalPath(src string) bool {
	if filepath.IsAbs(src) || strings.HasPrefix(src, "/") {
		return true
	}
	return src == "." || src == ".." ||
		strings.HasPrefix(src, "./") || strings.HasPrefix(src, "../")
}

// parseOwnerRepo handles "owner/repo[/sub/path][@skill]".
func parseOwnerRepo(src string) (SourceAddress, bool) {
	if strings.Contains(src, "://") || strings.HasPrefix(src, "git@") {
		return SourceAddress{}, false
	}

	repoAndPath, filter := src, ""
	if at := strings.LastIndex(src, "@"); at > 0 {
		repoAndPath, filter = src[:at], strings.TrimSpace(src[at+1:])
	}

	segments := splitSegments(repoAndPath)
	if len(segments) < 2 {
		return SourceAddress{}, false
	}
	owner, repo := segments[0], segments[1]
	if strings.HasPrefix(owner, ".") || strings.HasPrefix(repo, ".") || strings.Contains(owner, ".") {
		return SourceAddress{}, false
	}

	return SourceAddress{
		Original:    src,
		GitURL:      githubCloneURL(owner, repo),
		Subpath:     strings.Join(segments[2:], "/"),
		SkillFilter: filter,
	}, true
}

// parseGitHubURL handles https://github.com/owner/repo[/tree/ref[/sub/path]].
func parseGitHubURL(src string) (SourceAddress, bool) {
	var rest string
	switch {
	case strings.HasPrefix(src, "https://github.com/"):
		rest = strings.TrimPrefix(src, "https://github.com/")
	case strings.HasPrefix(src, "http://github.com/"):
		rest = strings.TrimPrefix(src, "http://github.com/")
	default:
		return SourceAddress{}, false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	segments := splitSegments(rest)
	if len(segments) < 2 {
		return SourceAddress{}, false
	}
	owner := segments[0]
	repo := strings.TrimSuffix(segments[1], ".git")

	parsed := SourceAddress{Original: src, GitURL: githubCloneURL(owner, repo)}
	if len(segments) >= 4 && segments[2] == "tree" {
		parsed.Ref = segments[3]
		parsed.Subpath = strings.Join(segments[4:], "/")
	}
	return parsed, true
}

func githubCloneURL(owner, repo string) string {
	return "https://github.com/" + owner + "/" + repo + ".git"
}

func splitSegments(s string) []string {
	var out []string
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
