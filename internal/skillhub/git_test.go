package skillhub

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

func TestCloneFailure_DetailFallbacks(t *testing.T) {
	tests := []struct {
		name           string
		stderr, stdout string
		want           string
	}{
		{"stderr", "fatal: repository not found\n", "ignored", "git clone failed for u: fatal: repository not found"},
		{"stdout", "  ", "remote said no", "git clone failed for u: remote said no"},
		{"unknown", "", "", "git clone failed for u: unknown git error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cloneFailure("u", tt.stderr, tt.stdout)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, schema.IsKind(err, schema.KindGit))
		})
	}
}

func fakeGit(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script git stub needs a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "git")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0o755))
	return bin
}

func TestGitCLI_ReportsStderr(t *testing.T) {
	bin := fakeGit(t, "echo 'fatal: could not read Username' >&2\nexit 128\n")

	err := GitCLI{Binary: bin}.Clone(context.Background(), "https://example.com/r.git", "main", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, "git clone failed for https://example.com/r.git: fatal: could not read Username", err.Error())
}

func TestGitCLI_PassesArgsAndDisablesPrompt(t *testing.T) {
	out := filepath.Join(t.TempDir(), "args")
	bin := fakeGit(t, "echo \"$@ prompt=$GIT_TERMINAL_PROMPT\" > '"+out+"'\n")
	dir := t.TempDir()

	require.NoError(t, GitCLI{Binary: bin}.Clone(context.Background(), "https://example.com/r.git", "v1", dir))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "clone --depth 1 --branch v1 https://example.com/r.git "+dir+" prompt=0\n", string(got))
}

func TestGitCLI_MissingBinary(t *testing.T) {
	err := GitCLI{Binary: filepath.Join(t.TempDir(), "no-git")}.Clone(context.Background(), "u", "", t.TempDir())
	require.Error(t, err)
	assert.True(t, schema.IsKind(err, schema.KindGit))
	assert.Contains(t, err.Error(), "failed to execute git clone for u")
}

func TestEmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "nested"), "x")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))

	require.NoError(t, emptyDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.DirExists(t, dir)
}

// newOriginRepo builds a repository with three commits: the first tagged v1,
// the second on branch feature and the third on the default branch.
func newOriginRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(body string) plumbing.Hash {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(skillDoc("demo", body)), 0o644))
		_, err := wt.Add("SKILL.md")
		require.NoError(t, err)
		hash, err := wt.Commit(body, &gogit.CommitOptions{
			Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
		})
		require.NoError(t, err)
		return hash
	}

	_, err = repo.CreateTag("v1", commit("tagged"), nil)
	require.NoError(t, err)
	feature := plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), commit("feature"))
	require.NoError(t, repo.Storer.SetReference(feature))
	commit("head")
	return dir
}

func TestGoGit_CloneRefs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file transport path handling differs on windows")
	}
	// go-git's file transport runs git-upload-pack.
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	url := "file://" + filepath.ToSlash(newOriginRepo(t))

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"default branch", "", "head"},
		{"branch", "feature", "feature"},
		{"tag", "v1", "tagged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, GoGit{}.Clone(context.Background(), url, tt.ref, dir))

			data, err := os.ReadFile(filepath.Join(dir, "SKILL.md"))
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}

	t.Run("missing ref", func(t *testing.T) {
		err := GoGit{}.Clone(context.Background(), url, "nope", t.TempDir())
		require.Error(t, err)
		assert.True(t, schema.IsKind(err, schema.KindGit))
		assert.Contains(t, err.Error(), "git clone failed for "+url)
	})
}
