package schema

// SkillMetadata describes one skill found in a runtime skills root.
type SkillMetadata struct {
	Name        string
	Description string
	Dir         string // absolute path of the skill directory
	Platforms   []string
	Deps        []string
	Source      string // root tag, or the manifest's own source field
	Version     string
	UpdatedAt   string
}

// LoadedSkill is an activated skill: its metadata plus the manifest body.
type LoadedSkill struct {
	SkillMetadata
	Body string
}

// SkillCatalog is the runtime view of installed skills consumed by the tool
// layer and the system prompt builder. skills.Manager is the canonical
// implementation.
type SkillCatalog interface {
	ListAvailable() []SkillMetadata
	Activate(name string) (*LoadedSkill, error)
	BuildCatalog() string
}
