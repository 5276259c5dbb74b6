package dependency

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaldolphin/skillhub/internal/config"
	"github.com/crystaldolphin/skillhub/internal/skillhub"
	"github.com/crystaldolphin/skillhub/internal/skills"
	"github.com/crystaldolphin/skillhub/internal/tools"
)

func TestNew_WiresServices(t *testing.T) {
	ws := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Agents.Defaults.Workspace = ws
	cfg.Skills.DisablePersonal = true
	cfg.Hub.RegistryBaseURL = "http://registry.invalid"

	c, err := New(&cfg, WithSkillOptions(skills.WithPlatform("linux")))
	require.NoError(t, err)

	assert.Equal(t, "http://registry.invalid", c.Client().RegistryBaseURL())
	assert.Equal(t, "linux", c.SkillManager().Platform())
	assert.Equal(t, filepath.Join(ws, "memory"), c.Memory().Dir())
	assert.Len(t, c.SkillManager().Roots(), 2)

	list := c.Tools().AllTools()
	assert.Equal(t, []string{"activate_skill", "memory_get", "memory_search", "remember", "skill_search"}, list.Names())
}

func TestNew_InstalledSkillIsActivatable(t *testing.T) {
	ws := t.TempDir()
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "hello"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "hello", "SKILL.md"),
		[]byte("---\nname: hello\ndescription: Say hello\n---\nGreet the user."), 0o644))

	cfg := config.DefaultConfig()
	cfg.Agents.Defaults.Workspace = ws
	cfg.Skills.DisablePersonal = true
	c, err := New(&cfg)
	require.NoError(t, err)

	_, err = c.Hub().InstallFromSource(context.Background(), skillhub.SourceInstallRequest{
		Source:     src,
		SkillsRoot: cfg.InstallRoot(),
	})
	require.NoError(t, err)

	out, err := c.Tools().GetTool(tools.ToolActivateSkill).Execute(context.Background(), map[string]any{"skill_name": "hello"})
	require.NoError(t, err)
	assert.Contains(t, out, "# Skill: hello")
	assert.Contains(t, out, "Greet the user.")
	assert.Contains(t, c.ContextBuilder().BuildSystemPrompt(), "- hello: Say hello")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNew_UsesInjectedHTTPClient(t *testing.T) {
	var paths []string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		paths = append(paths, r.URL.Host+r.URL.Path)
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"results":[{"slug":"demo","score":1}]}`)),
		}, nil
	})}

	cfg := config.DefaultConfig()
	cfg.Agents.Defaults.Workspace = t.TempDir()
	cfg.Skills.DisablePersonal = true
	cfg.Hub.RegistryBaseURL = "http://registry.invalid"

	c, err := New(&cfg, WithHTTPClient(hc))
	require.NoError(t, err)

	got, err := c.Client().SearchRegistry(context.Background(), "demo", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "demo", got[0].Slug)
	assert.Equal(t, []string{"registry.invalid/api/v1/search"}, paths)
	assert.Equal(t, cfg.Hub.Timeout(), hc.Timeout)
}

func TestNew_BootstrapFilesFromConfig(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, "USER.md"), []byte("default file"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "RULES.md"), []byte("configured file"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Agents.Defaults.Workspace = ws
	cfg.Skills.DisablePersonal = true

	c, err := New(&cfg)
	require.NoError(t, err)
	prompt := c.ContextBuilder().BuildSystemPrompt()
	assert.Contains(t, prompt, "default file")
	assert.NotContains(t, prompt, "configured file")

	cfg.Agents.Defaults.BootstrapFiles = []string{"RULES.md"}
	c, err = New(&cfg)
	require.NoError(t, err)
	prompt = c.ContextBuilder().BuildSystemPrompt()
	assert.Contains(t, prompt, "## RULES.md\n\nconfigured file")
	assert.NotContains(t, prompt, "default file")
}
