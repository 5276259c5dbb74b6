package skills

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// LookupFunc reports whether an executable named name resolves on this host.
type LookupFunc func(name string) bool

const defaultPathExt = ".COM;.EXE;.BAT;.CMD"

// CurrentPlatform returns the OS tag used by the platform gate.
func CurrentPlatform() string {
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		return runtime.GOOS
	default:
		return "unknown"
	}
}

// NormalizePlatform lowercases a platform tag and folds macOS aliases to "darwin".
func NormalizePlatform(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch tag {
	case "macos", "osx":
		return "darwin"
	}
	return tag
}

func platformAllowed(platforms []string, current string) bool {
	if len(platforms) == 0 {
		return true
	}
	for _, p := range platforms {
		p = NormalizePlatform(p)
		if p == "all" || p == "*" || p == current {
			return true
		}
	}
	return false
}

// CommandExists scans PATH for an executable named name.
func CommandExists(name string) bool {
	return commandExistsIn(runtime.GOOS, os.Getenv("PATH"), os.Getenv("PATHEXT"), name)
}

func commandExistsIn(goos, pathEnv, pathExt, name string) bool {
	if name == "" {
		return true
	}
	sep := ":"
	if goos == "windows" {
		sep = ";"
	}
	dirs := strings.Split(pathEnv, sep)

	if goos != "windows" {
		for _, dir := range dirs {
			if dir != "" && isExecutableFile(filepath.Join(dir, name)) {
				return true
			}
		}
		return false
	}

	candidates := windowsCandidates(name, pathExt)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, c := range candidates {
			if isRegularFile(filepath.Join(dir, c)) {
				return true
			}
		}
	}
	return false
}

// windowsCandidates lists the file names tried for name under PATHEXT.
// A name that already carries one of the extensions is tried as-is.
func windowsCandidates(name, pathExt string) []string {
	if strings.TrimSpace(pathExt) == "" {
		pathExt = defaultPathExt
	}
	var exts []string
	for _, ext := range strings.Split(pathExt, ";") {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			exts = append(exts, ext)
		}
	}

	lower := strings.ToLower(name)
	if slices.ContainsFunc(exts, func(ext string) bool { return strings.HasSuffix(lower, ext) }) {
		return []string{name}
	}
	candidates := []string{name}
	for _, ext := range exts {
		candidates = append(candidates, name+ext)
	}
	return candidates
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func missingDeps(deps []string, lookup LookupFunc) []string {
	var missing []string
	for _, dep := range deps {
		if !lookup(dep) {
			missing = append(missing, dep)
		}
	}
	return missing
}
