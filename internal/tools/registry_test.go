package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_SkipsToolsWithoutDeps(t *testing.T) {
	reg := NewRegistry(RegistryDeps{
		Skills: stubCatalog{},
		Memory: newMemoryStore(t),
	})

	require.NotNil(t, reg.GetTool(ToolRemember))
	assert.Nil(t, reg.GetTool(ToolSkillSearch))
	assert.True(t, reg.Has(ToolActivateSkill, ToolMemoryGet))
	assert.False(t, reg.Has(ToolActivateSkill, ToolSkillSearch))

	list := reg.AllTools()
	assert.Equal(t, []string{"activate_skill", "memory_get", "memory_search", "remember"}, list.Names())

	defs := list.Definitions()
	require.Len(t, defs, 4)
	fn := defs[0]["function"].(map[string]any)
	assert.Equal(t, "activate_skill", fn["name"])
	params := fn["parameters"].(map[string]any)
	assert.Equal(t, []any{"skill_name"}, params["required"])
}

func TestToolList_ExecuteUnknownTool(t *testing.T) {
	list := NewToolList(NewRememberTool(newMemoryStore(t)))

	out, err := list.Execute(context.Background(), "nope", nil)
	require.NoError(t, err)
	assert.Equal(t, "Error: unknown tool: nope", out)

	out, err = list.Execute(context.Background(), "remember", nil)
	require.NoError(t, err)
	assert.Equal(t, "Error: content cannot be empty", out)
}
