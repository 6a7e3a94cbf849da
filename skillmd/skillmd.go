// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package skillmd

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Filename is the fixed name of the metadata document inside a skill bundle.
const Filename = "SKILL.md"

// marker delimits the YAML frontmatter block at the top of a skill document.
const marker = "---"

// maxFrontmatterSize limits frontmatter to prevent YAML parsing attacks.
const maxFrontmatterSize = 64 * 1024

// Metadata is the validated header of a skill document. Name and Description
// are always non-blank on a successfully parsed record. Keys the parser does
// not recognize are preserved verbatim in Extra, keeping their original YAML
// value shapes.
type Metadata struct {
	Name         string
	Description  string
	License      string
	AllowedTools []string
	Extra        map[string]any
}

// ValidationError reports a malformed or incomplete skill document. It is
// always attributable to one specific file, named by Source.
type ValidationError struct {
	Source string
	Msg    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

func validationErrorf(source, format string, args ...any) *ValidationError {
	return &ValidationError{Source: source, Msg: fmt.Sprintf(format, args...)}
}

// allowedToolsKeys are the header keys recognized as the allowed-tools list.
// The first one present wins; both are excluded from Extra.
var allowedToolsKeys = []string{"allowed-tools", "allowed_tools"}

// Parse splits a skill document into its validated metadata and free-text
// instructions body. The document must begin with a frontmatter block
// delimited by lines consisting solely of "---"; the header must be a YAML
// mapping declaring at least a non-blank name and description.
//
// sourceLabel identifies the document in error messages (a file path or an
// archive-internal path).
func Parse(content []byte, sourceLabel string) (*Metadata, string, error) {
	header, body, err := splitFrontmatter(string(content), sourceLabel)
	if err != nil {
		return nil, "", err
	}

	if len(header) > maxFrontmatterSize {
		return nil, "", validationErrorf(sourceLabel, "frontmatter exceeds maximum size of %d bytes", maxFrontmatterSize)
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, "", validationErrorf(sourceLabel, "frontmatter is not a YAML mapping: %v", err)
	}
	if raw == nil {
		return nil, "", validationErrorf(sourceLabel, "frontmatter is empty")
	}

	meta := &Metadata{Extra: make(map[string]any)}

	for key, value := range raw {
		switch key {
		case "name":
			meta.Name = strings.TrimSpace(scalarString(value))
		case "description":
			meta.Description = strings.TrimSpace(scalarString(value))
		case "license":
			meta.License = strings.TrimSpace(scalarString(value))
		default:
			if isAllowedToolsKey(key) {
				continue // handled below so the first recognized key wins deterministically
			}
			meta.Extra[key] = value
		}
	}

	for _, key := range allowedToolsKeys {
		if value, ok := raw[key]; ok {
			meta.AllowedTools = normalizeAllowedTools(value)
			break
		}
	}

	if meta.Name == "" {
		return nil, "", validationErrorf(sourceLabel, "missing required frontmatter field: name")
	}
	if meta.Description == "" {
		return nil, "", validationErrorf(sourceLabel, "missing required frontmatter field: description")
	}

	return meta, strings.TrimLeft(body, " \t\r\n"), nil
}

// splitFrontmatter separates the delimited header block from the body.
// The opening marker must be the first line; the closing marker is the next
// line consisting solely of the marker.
func splitFrontmatter(content, sourceLabel string) (header, body string, err error) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || !isMarkerLine(lines[0]) {
		return "", "", validationErrorf(sourceLabel, "document must start with a %q frontmatter delimiter", marker)
	}

	var sb strings.Builder
	for i := 1; i < len(lines); i++ {
		if isMarkerLine(lines[i]) {
			return sb.String(), strings.Join(lines[i+1:], ""), nil
		}
		sb.WriteString(lines[i])
	}

	return "", "", validationErrorf(sourceLabel, "frontmatter missing closing %q delimiter", marker)
}

// isMarkerLine reports whether a line (with or without its trailing newline)
// consists solely of the frontmatter marker.
func isMarkerLine(line string) bool {
	return strings.TrimRight(line, "\r\n") == marker
}

// scalarString renders a scalar YAML value as a string. Mappings and
// sequences yield the empty string, which the caller treats as absent.
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int, int64, uint64, float64, bool:
		return fmt.Sprintf("%v", s)
	default:
		return ""
	}
}

// normalizeAllowedTools turns the allowed-tools header value into a list.
// A scalar string is split on commas; a sequence is stringified elementwise.
// Entries are trimmed and empty segments dropped. Any other shape yields an
// empty list rather than an error.
func normalizeAllowedTools(value any) []string {
	switch v := value.(type) {
	case string:
		return splitTrimmed(strings.Split(v, ","))
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		return splitTrimmed(parts)
	default:
		return []string{}
	}
}

func splitTrimmed(parts []string) []string {
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isAllowedToolsKey(key string) bool {
	for _, k := range allowedToolsKeys {
		if key == k {
			return true
		}
	}
	return false
}
