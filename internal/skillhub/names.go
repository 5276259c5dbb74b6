package skillhub

import (
	"strconv"
	"strings"
)

const (
	fallbackSkillName = "unnamed-skill"
	maxSkillNameLen   = 255
)

// SanitizeName turns an arbitrary skill name into a directory name made of
// [a-z0-9._-].
func SanitizeName(name string) string {
	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' {
			sb.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			sb.WriteByte('-')
			lastDash = true
		}
	}

	out := strings.Trim(sb.String(), ".-")
	if out == "" {
		return fallbackSkillName
	}
	if len(out) > maxSkillNameLen {
		out = out[:maxSkillNameLen]
	}
	return out
}

// UniqueName returns base, or base-2, base-3, … when base is already in
// used, and records the result.
func UniqueName(base string, used map[string]struct{}) string {
	name := base
	for i := 2; ; i++ {
		if _, taken := used[name]; !taken {
			break
		}
		name = base + "-" + strconv.Itoa(i)
	}
	used[name] = struct{}{}
	return name
}

// NormalizeFilters trims and lowercases skill filters, keeping only the part
// after the last '@' so "owner/repo@skill" matches "skill".
func NormalizeFilters(filters []string) []string {
	var out []string
	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if at := strings.LastIndex(f, "@"); at >= 0 {
			f = f[at+1:]
		}
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
