package schema

// MemorySource is one readable memory file, addressed relative to the workspace.
type MemorySource struct {
	Path    string // e.g. "memory/MEMORY.md"
	Content string
}

// MemoryStore manages long-term memory for the agent.
type MemoryStore interface {
	ReadLongTerm() string
	WriteLongTerm(content string) error
	AppendHistory(entry string) error
	AppendRememberedFact(fact string) error
	AppendExtractedFacts(facts []string) error
	GetMemoryContext(maxChars int) string
	Sources() []MemorySource
	Dir() string
}
