package skillhub

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// Checkout is a source materialized on disk. Release removes any scratch
// directory created for it; callers defer it right after Acquire succeeds.
type Checkout struct {
	Root string

	scratch string
	once    sync.Once
}

// Release removes the scratch clone, if any. It is safe to call repeatedly.
func (c *Checkout) Release() {
	if c == nil || c.scratch == "" {
		return
	}
	c.once.Do(func() {
		if err := os.RemoveAll(c.scratch); err != nil {
			slog.Warn("failed to remove clone directory", "dir", c.scratch, "err", err)
		}
	})
}

// Acquirer turns parsed sources and registry archives into directories on disk.
type Acquirer struct {
	cloner  Cloner
	tempDir string
}

// NewAcquirer creates an Acquirer. A nil cloner selects DefaultCloner.
func NewAcquirer(cloner Cloner) *Acquirer {
	if cloner == nil {
		cloner = DefaultCloner()
	}
	return &Acquirer{cloner: cloner}
}

// Acquire returns local sources as-is and shallow-clones git sources into a
// fresh temporary directory.
func (a *Acquirer) Acquire(ctx context.Context, src SourceAddress) (*Checkout, error) {
	if src.IsLocal() {
		return &Checkout{Root: src.LocalPath}, nil
	}
	if src.GitURL == "" {
		return nil, schema.SourceResolutionError("source has neither a git URL nor a local path: %s", src.Original)
	}

	dir, err := os.MkdirTemp(a.tempDir, "skillhub-clone-")
	if err != nil {
		return nil, schema.FilesystemError("create temporary directory in", os.TempDir(), err)
	}
	checkout := &Checkout{Root: dir, scratch: dir}

	slog.Debug("cloning skill source", "url", src.GitURL, "ref", src.Ref)
	if err := a.cloner.Clone(ctx, src.GitURL, src.Ref, dir); err != nil {
		checkout.Release()
		return nil, err
	}
	return checkout, nil
}

// Unpack extracts a registry archive into target, flattens a single wrapper
// directory and checks that a SKILL.md ended up at the top.
func (a *Acquirer) Unpack(data []byte, target string) error {
	if err := ExtractZip(data, target); err != nil {
		return err
	}
	if err := FlattenSingleDir(target); err != nil {
		return err
	}
	return EnsureManifest(target)
}
