package skillhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaldolphin/skillhub/internal/schema"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want SourceAddress
	}{
		{
			name: "shorthand with filter",
			in:   "vercel-labs/agent-skills@web-design",
			want: SourceAddress{
				Original:    "vercel-labs/agent-skills@web-design",
				GitURL:      "https://github.com/vercel-labs/agent-skills.git",
				SkillFilter: "web-design",
			},
		},
		{
			name: "shorthand with subpath",
			in:   "  owner/repo/skills/pdf ",
			want: SourceAddress{
				Original: "owner/repo/skills/pdf",
				GitURL:   "https://github.com/owner/repo.git",
				Subpath:  "skills/pdf",
			},
		},
		{
			name: "github tree url",
			in:   "https://github.com/anthropics/skills/tree/main/document-skills/pdf",
			want: SourceAddress{
				Original: "https://github.com/anthropics/skills/tree/main/document-skills/pdf",
				GitURL:   "https://github.com/anthropics/skills.git",
				Ref:      "main",
				Subpath:  "document-skills/pdf",
			},
		},
		{
			name: "github repo url with .git",
			in:   "http://github.com/owner/repo.git",
			want: SourceAddress{
				Original: "http://github.com/owner/repo.git",
				GitURL:   "https://github.com/owner/repo.git",
			},
		},
		{
			name: "github url with too few segments",
			in:   "https://github.com/owner",
			want: SourceAddress{Original: "https://github.com/owner", GitURL: "https://github.com/owner"},
		},
		{
			name: "ssh url falls back",
			in:   "git@gitlab.com:team/skills.git",
			want: SourceAddress{Original: "git@gitlab.com:team/skills.git", GitURL: "git@gitlab.com:team/skills.git"},
		},
		{
			name: "domain-like owner falls back",
			in:   "gitlab.com/team/skills",
			want: SourceAddress{Original: "gitlab.com/team/skills", GitURL: "gitlab.com/team/skills"},
		},
		{
			name: "relative path",
			in:   "./skills",
			want: SourceAddress{Original: "./skills", LocalPath: "./skills"},
		},
		{
			name: "parent dir",
			in:   "..",
			want: SourceAddress{Original: "..", LocalPath: ".."},
		},
		{
			name: "absolute path",
			in:   "/opt/skills",
			want: SourceAddress{Original: "/opt/skills", LocalPath: "/opt/skills"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSource(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, got.GitURL == "", got.LocalPath == "", "exactly one of GitURL and LocalPath must be set")
		})
	}
}

func TestParseSource_Empty(t *testing.T) {
	_, err := ParseSource("   ")
	require.Error(t, err)
	assert.True(t, schema.IsKind(err, schema.KindSourceResolution))
}

func TestParseSource_LeadingAtIsNotAFilter(t *testing.T) {
	got, err := ParseSource("@scope/pkg")
	require.NoError(t, err)
	assert.Empty(t, got.SkillFilter)
	assert.Equal(t, "https://github.com/@scope/pkg.git", got.GitURL)
}
