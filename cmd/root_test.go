package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	configPath, verbose = "", false
	searchLimit, searchSource, searchJSON = 0, "all", false
	installRegistry, installCatalog, installVersion, installTag = "", "", "", ""
	installSkills, installRoot, installForce, installJSON = nil, "", false, false
	listJSON, skillsAll, activateRaw = false, false, false
	toolArgs, toolList = "{}", false
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestConfig(t *testing.T) (cfgPath, workspace string) {
	t.Helper()
	dir := t.TempDir()
	workspace = filepath.Join(dir, "ws")
	cfg := map[string]any{
		"agents": map[string]any{"defaults": map[string]any{"workspace": workspace}},
		"skills": map[string]any{"disablePersonal": true},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	cfgPath = filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, data, 0o600))
	return cfgPath, workspace
}

func TestCLI_InstallActivateRemember(t *testing.T) {
	cfgPath, workspace := writeTestConfig(t)
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "hello"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "hello", "SKILL.md"),
		[]byte("---\nname: hello\ndescription: Say hello\n---\nGreet the user."), 0o644))

	out, err := runCLI(t, "install", src, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Installed hello -> "+filepath.Join(workspace, "skills", "hello"))

	out, err = runCLI(t, "list", src, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "hello")

	out, err = runCLI(t, "skills", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "ready")

	out, err = runCLI(t, "activate", "hello", "--raw", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# Skill: hello")
	assert.Contains(t, out, "Greet the user.")

	_, err = runCLI(t, "activate", "ghost", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, "Skill 'ghost' not found. Available skills: hello", err.Error())

	out, err = runCLI(t, "tool", "remember", "--args", `{"content":"Likes tea"}`, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Remembered: Likes tea\n", out)

	out, err = runCLI(t, "prompt", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Likes tea")
	assert.Contains(t, out, "- hello: Say hello")
}

func TestCLI_InstallNeedsExactlyOneSource(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := runCLI(t, "install", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "give exactly one of")

	_, err = runCLI(t, "install", "./x", "--registry", "demo", "--config", cfgPath)
	require.Error(t, err)
}

func TestCLI_ToolListPrintsDefinitions(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	out, err := runCLI(t, "tool", "--list", "--config", cfgPath)
	require.NoError(t, err)

	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	assert.Len(t, defs, 5)
}

func TestCLI_OnboardCreatesWorkspace(t *testing.T) {
	cfgPath, workspace := writeTestConfig(t)
	require.NoError(t, os.MkdirAll(workspace, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workspace, "USER.md"), []byte("mine"), 0o644))

	out, err := runCLI(t, "onboard", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Config refreshed at "+cfgPath)
	assert.Contains(t, out, "Created memory/MEMORY.md")
	assert.NotContains(t, out, "Created USER.md")

	data, err := os.ReadFile(filepath.Join(workspace, "USER.md"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
	assert.DirExists(t, filepath.Join(workspace, "skills"))
	assert.FileExists(t, filepath.Join(workspace, "memory", "HISTORY.md"))
}

func TestColumn_KeepsRunesWhole(t *testing.T) {
	got := column("日本語のスキル名前です", 15)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 15)
	assert.Equal(t, "short", column("short", 15))
}

func TestCLI_StatusCountsShadowedSkills(t *testing.T) {
	cfgPath, workspace := writeTestConfig(t)
	for _, root := range []string{filepath.Join(workspace, ".agents", "skills"), filepath.Join(workspace, "skills")} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "demo"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "demo", "SKILL.md"),
			[]byte("---\nname: demo\ndescription: Demo\n---\nbody"), 0o644))
	}

	out, err := runCLI(t, "status", "--config", cfgPath)
	require.NoError(t, err)
	assert.Regexp(t, `agents-project\s+\S+ ✓ \(1\)`, out)
	assert.Regexp(t, `workspace\s+\S+ ✓ \(1\)`, out)
	assert.Contains(t, out, "Skills: 1 installed, 1 available")
}

func TestCLI_MemoryCommandsAndInstallHistory(t *testing.T) {
	cfgPath, workspace := writeTestConfig(t)
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "notes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes", "SKILL.md"),
		[]byte("---\nname: notes\ndescription: Notes\n---\nbody"), 0o644))

	_, err := runCLI(t, "install", src, "--config", cfgPath)
	require.NoError(t, err)

	out, err := runCLI(t, "memory", "note", "Uses vim", "Works remotely", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Noted 2 fact(s)")

	_, err = runCLI(t, "memory", "log", "Reviewed", "skills", "--config", cfgPath)
	require.NoError(t, err)

	history, err := os.ReadFile(filepath.Join(workspace, "memory", "HISTORY.md"))
	require.NoError(t, err)
	assert.Contains(t, string(history), "Installed skill notes from "+src)
	assert.Contains(t, string(history), "] Reviewed skills\n\n")

	out, err = runCLI(t, "memory", "show", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "## Extracted Notes")
	assert.Contains(t, out, "Uses vim")
	assert.Contains(t, out, "Works remotely")
}
