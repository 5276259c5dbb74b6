package skillhub

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
	"github.com/crystaldolphin/skillhub/internal/skills"
)

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return schema.FilesystemError("create directory", dir, err)
	}
	return nil
}

// PrepareTarget makes dir an empty directory. An existing dir is an error
// unless force is set, in which case it is removed first.
func PrepareTarget(dir string, force bool) error {
	if _, err := os.Lstat(dir); err == nil {
		if !force {
			return &schema.SkillError{
				Kind:    schema.KindValidation,
				Message: fmt.Sprintf("target already exists: %s (set force=true to overwrite)", dir),
				Path:    dir,
			}
		}
		if err := os.RemoveAll(dir); err != nil {
			return schema.FilesystemError("remove existing directory", dir, err)
		}
	}
	return ensureDir(dir)
}

// followRoot resolves dir when dir itself is a symlink. Links below it are
// left alone.
func followRoot(dir string) (string, error) {
	info, err := os.Lstat(dir)
	if err != nil {
		return "", schema.FilesystemError("stat", dir, err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return dir, nil
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", schema.FilesystemError("resolve symlink", dir, err)
	}
	return resolved, nil
}

// CopyDirectory copies src into dst recursively. src may be a symlink to a
// directory; symlinks below it are skipped.
func CopyDirectory(src, dst string) error {
	root, err := followRoot(src)
	if err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return schema.FilesystemError("walk", path, err)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || !safeRelative(rel) {
			return &schema.SkillError{
				Kind:    schema.KindFilesystem,
				Message: "unsafe relative path while copying",
				Path:    path,
			}
		}
		dest := filepath.Join(dst, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			return nil
		case d.IsDir():
			return ensureDir(dest)
		case d.Type().IsRegular():
			return copyFile(path, dest)
		}
		return nil
	})
}

// safeRelative rejects paths with parent, root or volume components.
func safeRelative(rel string) bool {
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" || strings.HasPrefix(rel, string(filepath.Separator)) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return schema.FilesystemError("stat", src, err)
	}
	in, err := os.Open(src)
	if err != nil {
		return schema.FilesystemError("open", src, err)
	}
	defer in.Close()

	if err := ensureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return schema.FilesystemError("create file", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return schema.FilesystemError("copy to", dst, err)
	}
	if err := out.Close(); err != nil {
		return schema.FilesystemError("write file", dst, err)
	}
	return nil
}

// EnsureManifest fails when dir has no SKILL.md at its root.
func EnsureManifest(dir string) error {
	if !fileExists(filepath.Join(dir, skills.ManifestFile)) {
		return &schema.SkillError{
			Kind:    schema.KindFilesystem,
			Message: fmt.Sprintf("installed directory is missing SKILL.md at root: %s", dir),
			Path:    dir,
		}
	}
	return nil
}
