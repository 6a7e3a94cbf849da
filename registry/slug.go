// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"regexp"
	"strings"
)

// FallbackSlug is used when a skill name normalizes to nothing.
const FallbackSlug = "skill"

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the public identity of a skill from its declared name:
// trimmed, lowercased, every run of non-alphanumeric characters collapsed to
// a single hyphen, leading and trailing hyphens removed. An empty result
// falls back to FallbackSlug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return FallbackSlug
	}
	return s
}
