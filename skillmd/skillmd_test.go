// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package skillmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `---
name: Data Cruncher
description: crunches data
license: Apache-2.0
allowed-tools: bash, python
version: 1.2.0
tags:
  - data
  - etl
---

Use the scripts under scripts/ to crunch data.
`

func TestParse_ValidDocument(t *testing.T) {
	t.Parallel()

	meta, body, err := Parse([]byte(validDoc), "SKILL.md")
	require.NoError(t, err)

	assert.Equal(t, "Data Cruncher", meta.Name)
	assert.Equal(t, "crunches data", meta.Description)
	assert.Equal(t, "Apache-2.0", meta.License)
	assert.Equal(t, []string{"bash", "python"}, meta.AllowedTools)

	assert.Equal(t, "1.2.0", meta.Extra["version"])
	assert.Equal(t, []any{"data", "etl"}, meta.Extra["tags"])
	assert.NotContains(t, meta.Extra, "name")
	assert.NotContains(t, meta.Extra, "allowed-tools")

	assert.Equal(t, "Use the scripts under scripts/ to crunch data.\n", body)
}

func TestParse_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "no frontmatter",
			content: "just a markdown file\n",
			wantMsg: "must start with",
		},
		{
			name:    "unclosed frontmatter",
			content: "---\nname: Foo\ndescription: bar\n",
			wantMsg: "closing",
		},
		{
			name:    "header is a bare scalar",
			content: "---\njust a string\n---\nbody\n",
			wantMsg: "not a YAML mapping",
		},
		{
			name:    "header is a list",
			content: "---\n- a\n- b\n---\nbody\n",
			wantMsg: "not a YAML mapping",
		},
		{
			name:    "empty header",
			content: "---\n---\nbody\n",
			wantMsg: "empty",
		},
		{
			name:    "missing name",
			content: "---\ndescription: bar\n---\nbody\n",
			wantMsg: "name",
		},
		{
			name:    "blank name",
			content: "---\nname: \"  \"\ndescription: bar\n---\nbody\n",
			wantMsg: "name",
		},
		{
			name:    "missing description",
			content: "---\nname: Foo\n---\nbody\n",
			wantMsg: "description",
		},
		{
			name:    "blank description",
			content: "---\nname: Foo\ndescription: \"\"\n---\nbody\n",
			wantMsg: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse([]byte(tt.content), "skills/x/SKILL.md")
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "skills/x/SKILL.md", verr.Source)
			assert.Contains(t, err.Error(), "skills/x/SKILL.md")
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_AllowedToolsShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "comma separated string",
			value: "allowed-tools: \" bash , python ,, \"",
			want:  []string{"bash", "python"},
		},
		{
			name:  "sequence",
			value: "allowed-tools:\n  - bash\n  - \"  python \"\n  - \"\"",
			want:  []string{"bash", "python"},
		},
		{
			name:  "sequence with non-strings stringified",
			value: "allowed-tools:\n  - bash\n  - 42",
			want:  []string{"bash", "42"},
		},
		{
			name:  "mapping shape yields empty list",
			value: "allowed-tools:\n  bash: true",
			want:  []string{},
		},
		{
			name:  "snake case key accepted",
			value: "allowed_tools: bash",
			want:  []string{"bash"},
		},
		{
			name:  "absent",
			value: "license: MIT",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := "---\nname: Foo\ndescription: bar\n" + tt.value + "\n---\nbody\n"
			meta, _, err := Parse([]byte(doc), "SKILL.md")
			require.NoError(t, err)
			assert.Equal(t, tt.want, meta.AllowedTools)
			assert.NotContains(t, meta.Extra, "allowed-tools")
			assert.NotContains(t, meta.Extra, "allowed_tools")
		})
	}
}

func TestParse_BodyHandling(t *testing.T) {
	t.Parallel()

	t.Run("leading blank lines stripped, rest verbatim", func(t *testing.T) {
		t.Parallel()

		doc := "---\nname: Foo\ndescription: bar\n---\n\n\n  indented first line\nsecond line\n"
		_, body, err := Parse([]byte(doc), "SKILL.md")
		require.NoError(t, err)
		// TrimLeft also removes the indentation of the first content line,
		// matching the resolver's freshness contract: no interpretation
		// beyond whitespace stripping.
		assert.Equal(t, "indented first line\nsecond line\n", body)
	})

	t.Run("marker inside body is not a delimiter", func(t *testing.T) {
		t.Parallel()

		doc := "---\nname: Foo\ndescription: bar\n---\nbody with --- inline\n---\ntrailer\n"
		_, body, err := Parse([]byte(doc), "SKILL.md")
		require.NoError(t, err)
		assert.Equal(t, "body with --- inline\n---\ntrailer\n", body)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		doc := "---\nname: Foo\ndescription: bar\n---\n"
		_, body, err := Parse([]byte(doc), "SKILL.md")
		require.NoError(t, err)
		assert.Empty(t, body)
	})
}

// Re-parsing a document rebuilt from extracted fields yields the same
// normalized metadata.
func TestParse_NormalizationIdempotent(t *testing.T) {
	t.Parallel()

	meta1, _, err := Parse([]byte(validDoc), "SKILL.md")
	require.NoError(t, err)

	rebuilt := "---\nname: " + meta1.Name +
		"\ndescription: " + meta1.Description +
		"\nlicense: " + meta1.License +
		"\nallowed-tools: bash, python" +
		"\nversion: 1.2.0\ntags:\n  - data\n  - etl\n---\nbody\n"

	meta2, _, err := Parse([]byte(rebuilt), "SKILL.md")
	require.NoError(t, err)

	assert.Equal(t, meta1.Name, meta2.Name)
	assert.Equal(t, meta1.Description, meta2.Description)
	assert.Equal(t, meta1.AllowedTools, meta2.AllowedTools)
	assert.Equal(t, meta1.Extra, meta2.Extra)
}
