package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

// ActivateSkillTool loads the full instructions of an installed skill.
type ActivateSkillTool struct {
	catalog schema.SkillCatalog
}

// NewActivateSkillTool creates an ActivateSkillTool over catalog.
func NewActivateSkillTool(catalog schema.SkillCatalog) *ActivateSkillTool {
	return &ActivateSkillTool{catalog: catalog}
}

func (t *ActivateSkillTool) Name() string { return string(ToolActivateSkill) }
func (t *ActivateSkillTool) Description() string {
	return "Activate a skill by name and load its full instructions from SKILL.md."
}

func (t *ActivateSkillTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"skill_name": {
				"type": "string",
				"description": "The skill name to activate"
			}
		},
		"required": ["skill_name"]
	}`)
}

// Execute never returns a Go error: every failure is rendered as "Error: ..."
// so the model can read it.
func (t *ActivateSkillTool) Execute(_ context.Context, params map[string]any) (string, error) {
	name, _ := params["skill_name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return "Error: Missing required field: skill_name", nil
	}

	skill, err := t.catalog.Activate(name)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	return RenderSkill(skill), nil
}

// RenderSkill formats an activated skill the way activate_skill returns it.
func RenderSkill(skill *schema.LoadedSkill) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Skill: %s\n\n", skill.Name)
	fmt.Fprintf(&sb, "Description: %s\n", skill.Description)
	fmt.Fprintf(&sb, "Skill directory: %s\n", skill.Dir)
	fmt.Fprintf(&sb, "Source: %s\n", skill.Source)
	if skill.Version != "" {
		fmt.Fprintf(&sb, "Version: %s\n", skill.Version)
	}
	if skill.UpdatedAt != "" {
		fmt.Fprintf(&sb, "Updated at: %s\n", skill.UpdatedAt)
	}
	if len(skill.Platforms) > 0 {
		fmt.Fprintf(&sb, "Platforms: %s\n", strings.Join(skill.Platforms, ", "))
	}
	if len(skill.Deps) > 0 {
		fmt.Fprintf(&sb, "Dependencies: %s\n", strings.Join(skill.Deps, ", "))
	}
	sb.WriteString("\n## Instructions\n\n")
	sb.WriteString(skill.Body)
	return sb.String()
}
