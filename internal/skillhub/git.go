package skillhub

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// Cloner performs a depth-1 clone of url into dir, checking out ref when it
// is not empty. dir exists and is empty.
type Cloner interface {
	Clone(ctx context.Context, url, ref, dir string) error
}

// DefaultCloner uses the git binary when one is on PATH and go-git otherwise.
func DefaultCloner() Cloner {
	if bin, err := exec.LookPath("git"); err == nil {
		return GitCLI{Binary: bin}
	}
	slog.Debug("git binary not found, using go-git for clones")
	return GoGit{}
}

// GitCLI clones by running the git binary.
type GitCLI struct {
	Binary string
}

func (g GitCLI) Clone(ctx context.Context, url, ref, dir string) error {
	bin := g.Binary
	if bin == "" {
		bin = "git"
	}
	args := []string{"clone", "--depth", "1"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, url, dir)

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return &schema.SkillError{
				Kind:    schema.KindGit,
				Message: fmt.Sprintf("failed to execute git clone for %s", url),
				Err:     err,
			}
		}
		return cloneFailure(url, stderr.String(), stdout.String())
	}
	return nil
}

func cloneFailure(url, stderr, stdout string) error {
	details := strings.TrimSpace(stderr)
	if details == "" {
		details = strings.TrimSpace(stdout)
	}
	if details == "" {
		details = "unknown git error"
	}
	return schema.NewSkillError(schema.KindGit, "git clone failed for %s: %s", url, details)
}

// GoGit clones in-process with go-git. A ref is tried as a branch first and
// then as a tag.
type GoGit struct{}

func (GoGit) Clone(ctx context.Context, url, ref, dir string) error {
	opts := &gogit.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         gogit.NoTags,
	}
	if ref == "" {
		return goGitClone(ctx, dir, url, opts)
	}

	opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
	err := goGitClone(ctx, dir, url, opts)
	if err == nil {
		return nil
	}
	slog.Debug("branch clone failed, retrying as tag", "url", url, "ref", ref, "err", err)
	if cleanErr := emptyDir(dir); cleanErr != nil {
		return cleanErr
	}
	opts.ReferenceName = plumbing.NewTagReferenceName(ref)
	return goGitClone(ctx, dir, url, opts)
}

func goGitClone(ctx context.Context, dir, url string, opts *gogit.CloneOptions) error {
	if _, err := gogit.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return cloneFailure(url, err.Error(), "")
	}
	return nil
}

func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return schema.FilesystemError("read directory", dir, err)
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return schema.FilesystemError("remove", p, err)
		}
	}
	return nil
}
