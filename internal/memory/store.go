// Package memory keeps the agent's long-term memory as markdown files under
// <workspace>/memory.
package memory

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/crystaldolphin/skillhub/internal/schema"
	"github.com/crystaldolphin/skillhub/internal/shared/stringutils"
)

const (
	// DefaultMaxContextChars is the default prompt budget for GetMemoryContext.
	DefaultMaxContextChars = 8000

	LongTermFile = "MEMORY.md"
	HistoryFile  = "HISTORY.md"

	extractedHeader     = "## Extracted Notes"
	rememberedHeader    = "## Remembered Facts"
	maxExtractedChars   = 8000
	longTermShare       = 0.6
	minTodayBudget      = 100
	dateLayout          = "2006-01-02"
	dailyFileNameLength = len(dateLayout + ".md")
)

// FileStore is the file-backed schema.MemoryStore. Every read-modify-write of
// MEMORY.md runs under the store's lock; stores that share a workspace must
// share the lock too.
type FileStore struct {
	dir string
	mu  *sync.Mutex
	now func() time.Time
}

// NewFileStore creates a FileStore rooted at workspace, creating memory/ if
// needed. A nil lock gives the store a private one.
func NewFileStore(workspace string, lock *sync.Mutex) (*FileStore, error) {
	dir := filepath.Join(workspace, "memory")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create memory dir: %w", err)
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &FileStore{dir: dir, mu: lock, now: time.Now}, nil
}

var _ schema.MemoryStore = (*FileStore)(nil)

// Dir returns the memory directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) longTermPath() string { return filepath.Join(s.dir, LongTermFile) }

func (s *FileStore) today() string { return s.now().Format(dateLayout) }

// TodayPath returns the path of today's notes file.
func (s *FileStore) TodayPath() string {
	return filepath.Join(s.dir, s.today()+".md")
}

// ReadLongTerm returns the contents of MEMORY.md, or "" if not yet written.
func (s *FileStore) ReadLongTerm() string {
	data, err := os.ReadFile(s.longTermPath())
	if err != nil {
		return ""
	}
	return string(data)
}

// ReadToday returns today's notes, or "".
func (s *FileStore) ReadToday() string {
	data, err := os.ReadFile(s.TodayPath())
	if err != nil {
		return ""
	}
	return string(data)
}

// WriteLongTerm overwrites MEMORY.md with content.
func (s *FileStore) WriteLongTerm(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.longTermPath(), []byte(content), 0o644)
}

// AppendHistory appends an entry to HISTORY.md followed by a blank line.
func (s *FileStore) AppendHistory(entry string) error {
	f, err := os.OpenFile(filepath.Join(s.dir, HistoryFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s\n\n", strings.TrimRight(entry, "\r\n "))
	return err
}

// AppendExtractedFacts adds dated bullets to the Extracted Notes section of
// MEMORY.md, dropping the oldest lines once the section outgrows its cap.
func (s *FileStore) AppendExtractedFacts(facts []string) error {
	bullets := make([]string, 0, len(facts))
	for _, f := range facts {
		if f = strings.TrimSpace(f); f != "" {
			bullets = append(bullets, s.bullet(f))
		}
	}
	if len(bullets) == 0 {
		return nil
	}
	return s.editSection(extractedHeader, strings.Join(bullets, "\n"), maxExtractedChars)
}

// AppendRememberedFact adds one dated bullet to the Remembered Facts section
// of MEMORY.md. A blank fact is ignored.
func (s *FileStore) AppendRememberedFact(fact string) error {
	fact = strings.TrimSpace(fact)
	if fact == "" {
		return nil
	}
	return s.editSection(rememberedHeader, s.bullet(fact), 0)
}

func (s *FileStore) bullet(fact string) string {
	return "- [" + s.today() + "] " + fact
}

// editSection appends bullets to the section under header, creating the
// section at the end of the file when it is missing. A positive limit caps
// the section body by trimming whole lines from its top.
func (s *FileStore) editSection(header, bullets string, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.ReadLongTerm()
	updated := appendToSection(existing, header, bullets, limit)
	if err := os.WriteFile(s.longTermPath(), []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", LongTermFile, err)
	}
	slog.Debug("memory section updated", "section", header, "bytes", len(updated))
	return nil
}

func appendToSection(existing, header, bullets string, limit int) string {
	start := strings.Index(existing, header)
	if start < 0 {
		var sb strings.Builder
		sb.WriteString(existing)
		if existing != "" && !strings.HasSuffix(existing, "\n") {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "\n%s\n%s\n", header, bullets)
		return sb.String()
	}

	afterHeader := start + len(header)
	rest := existing[afterHeader:]
	end := strings.Index(rest, "\n## ")
	if end < 0 {
		end = len(rest)
	}
	body := strings.Trim(rest[:end], "\n")
	tail := rest[end:]
	if tail == "" {
		tail = "\n"
	}

	combined := bullets
	if body != "" {
		combined = body + "\n" + bullets
	}
	for limit > 0 && len(combined) > limit {
		nl := strings.IndexByte(combined, '\n')
		if nl < 0 {
			break
		}
		combined = combined[nl+1:]
	}

	return existing[:afterHeader] + "\n" + combined + tail
}

// GetMemoryContext renders long-term memory and today's notes for the system
// prompt within roughly maxChars. Long-term memory gets 60% of the budget and
// today's notes whatever is left, if that is more than 100 chars.
func (s *FileStore) GetMemoryContext(maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxContextChars
	}
	var parts []string
	remaining := maxChars

	if lt := s.ReadLongTerm(); lt != "" {
		cut := stringutils.TruncateAtBoundary(lt, int(float64(maxChars)*longTermShare))
		parts = append(parts, "## Long-term Memory\n"+cut)
		remaining = max(0, remaining-len(cut))
	}
	if today := s.ReadToday(); today != "" && remaining > minTodayBudget {
		parts = append(parts, "## Today's Notes\n"+stringutils.TruncateAtBoundary(today, remaining))
	}
	return strings.Join(parts, "\n\n")
}

// Sources returns MEMORY.md followed by the dated note files, newest first.
// Empty files are left out. Paths are relative to the workspace.
func (s *FileStore) Sources() []schema.MemorySource {
	var out []schema.MemorySource
	if lt := s.ReadLongTerm(); lt != "" {
		out = append(out, schema.MemorySource{Path: "memory/" + LongTermFile, Content: lt})
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return out
	}
	var dated []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsDailyFile(e.Name()) {
			dated = append(dated, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dated)))

	for _, name := range dated {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil || strings.TrimSpace(string(data)) == "" {
			continue
		}
		out = append(out, schema.MemorySource{Path: "memory/" + name, Content: string(data)})
	}
	return out
}

// IsDailyFile reports whether name looks like YYYY-MM-DD.md.
func IsDailyFile(name string) bool {
	if len(name) != dailyFileNameLength || !strings.HasSuffix(name, ".md") {
		return false
	}
	for i, c := range name[:10] {
		switch i {
		case 4, 7:
			if c != '-' {
				return false
			}
		default:
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// AllowedPath reports whether name is a memory file the agent may read.
func AllowedPath(name string) bool {
	return name == LongTermFile || IsDailyFile(name)
}
