package skillhub

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
	"github.com/crystaldolphin/skillhub/internal/skills"
)

// ExtractZip unpacks a zip archive into target. Entries whose names would
// land outside target are skipped.
func ExtractZip(data []byte, target string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return schema.ArchiveError("invalid zip archive", err)
	}

	for _, f := range zr.File {
		rel, ok := enclosedName(f.Name)
		if !ok {
			slog.Debug("skipping unsafe zip entry", "name", f.Name)
			continue
		}
		dest := filepath.Join(target, rel)

		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return schema.FilesystemError("create directory", dest, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return schema.FilesystemError("create directory", filepath.Dir(dest), err)
		}
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

// enclosedName returns the slash-cleaned, OS-specific relative path of a zip
// entry, or false when the entry has no usable name or escapes the target.
func enclosedName(name string) (string, bool) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", false
	}
	name = strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(name, "/") {
		return "", false
	}
	cleaned := path.Clean(name)
	if cleaned == "." {
		return "", false
	}
	rel := filepath.FromSlash(cleaned)
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return rel, true
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return schema.ArchiveError(fmt.Sprintf("open zip entry %s", f.Name), err)
	}
	defer rc.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return schema.FilesystemError("create file", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return schema.ArchiveError(fmt.Sprintf("extract zip entry %s", f.Name), err)
	}
	if err := out.Close(); err != nil {
		return schema.FilesystemError("write file", dest, err)
	}
	return nil
}

// FlattenSingleDir promotes the contents of a lone wrapper directory when
// root has no SKILL.md of its own, no files, exactly one subdirectory, and
// that subdirectory holds a SKILL.md.
func FlattenSingleDir(root string) error {
	if fileExists(filepath.Join(root, skills.ManifestFile)) {
		return nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return schema.FilesystemError("read directory", root, err)
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			return nil
		}
		dirs = append(dirs, e.Name())
	}
	if len(dirs) != 1 {
		return nil
	}

	child := filepath.Join(root, dirs[0])
	if !fileExists(filepath.Join(child, skills.ManifestFile)) {
		return nil
	}

	inner, err := os.ReadDir(child)
	if err != nil {
		return schema.FilesystemError("read directory", child, err)
	}
	for _, e := range inner {
		from := filepath.Join(child, e.Name())
		to := filepath.Join(root, e.Name())
		if err := os.Rename(from, to); err != nil {
			return schema.FilesystemError("move", from, err)
		}
	}
	if err := os.Remove(child); err != nil {
		return schema.FilesystemError("remove directory", child, err)
	}
	return nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
