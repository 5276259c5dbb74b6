package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaldolphin/skillhub/internal/memory"
)

func newMemoryStore(t *testing.T) *memory.FileStore {
	t.Helper()
	s, err := memory.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestRemember(t *testing.T) {
	store := newMemoryStore(t)
	tool := NewRememberTool(store)

	out, err := tool.Execute(context.Background(), map[string]any{"content": "  User prefers terminal workflows "})
	require.NoError(t, err)
	assert.Equal(t, "Remembered: User prefers terminal workflows", out)
	assert.Contains(t, store.ReadLongTerm(), "## Remembered Facts\n- [")
	assert.Contains(t, store.ReadLongTerm(), "] User prefers terminal workflows\n")

	out, err = tool.Execute(context.Background(), map[string]any{"content": " "})
	require.NoError(t, err)
	assert.Equal(t, "Error: content cannot be empty", out)
}

type searchOutput struct {
	Results []struct {
		Path    string `json:"path"`
		Snippet string `json:"snippet"`
	} `json:"results"`
	Source string `json:"source"`
}

func TestMemorySearch_ScansDailyFiles(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.WriteLongTerm("General notes\nUses Rust-Analyzer daily\n"))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "2025-01-01.md"),
		[]byte("Project decision: use rust-analyzer cache\n\nunrelated\n"), 0o644))

	out, err := NewMemorySearchTool(store).Execute(context.Background(), map[string]any{"query": "RUST-ANALYZER"})
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "file", got.Source)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "memory/MEMORY.md", got.Results[0].Path)
	assert.Equal(t, "Uses Rust-Analyzer daily", got.Results[0].Snippet)
	assert.Equal(t, "memory/2025-01-01.md", got.Results[1].Path)
}

func TestMemorySearch_LimitAndEmpty(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.WriteLongTerm("a1\na2\na3\na4\n"))
	tool := NewMemorySearchTool(store)

	out, err := tool.Execute(context.Background(), map[string]any{"query": "a", "max_results": float64(2)})
	require.NoError(t, err)
	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Results, 2)

	out, err = tool.Execute(context.Background(), map[string]any{"query": "zzz"})
	require.NoError(t, err)
	assert.Contains(t, out, `"results": []`)

	out, err = tool.Execute(context.Background(), map[string]any{"query": ""})
	require.NoError(t, err)
	assert.Equal(t, "Error: query is required", out)
}

func TestMemoryGet(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "2025-02-14.md"), []byte("one\ntwo\nthree\n"), 0o644))
	tool := NewMemoryGetTool(store)

	out, err := tool.Execute(context.Background(), map[string]any{"path": "2025-02-14.md", "from": float64(2), "lines": float64(5)})
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"path": "2025-02-14.md", "text": "two\nthree"}, got)

	out, err = tool.Execute(context.Background(), map[string]any{"path": "2025-02-14.md"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "one\ntwo\nthree\n", got["text"])
}

func TestMemoryGet_Errors(t *testing.T) {
	tool := NewMemoryGetTool(newMemoryStore(t))

	out, err := tool.Execute(context.Background(), map[string]any{"path": "../secrets.md"})
	require.NoError(t, err)
	assert.Equal(t, "Error: path must be MEMORY.md or YYYY-MM-DD.md, got: ../secrets.md", out)

	out, err = tool.Execute(context.Background(), map[string]any{"path": "MEMORY.md"})
	require.NoError(t, err)
	assert.Equal(t, "Error: file not found: MEMORY.md", out)
}

func TestLineRange(t *testing.T) {
	assert.Equal(t, "a\nb", lineRange("a\nb\nc", 0, 2))
	assert.Equal(t, "", lineRange("a\nb\nc", 9, 2))
	assert.Equal(t, "", lineRange("a\nb\nc", 1, 0))
}
