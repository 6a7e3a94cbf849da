// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import "github.com/skillz-mcp/skillz/skillmd"

// Skill is one discovered bundle: a metadata document plus auxiliary files,
// backed either by a plain directory or by a single-file archive. The two
// backends are a tagged variant discriminated by ArchivePath; consumers
// branch on Archived() rather than on virtual dispatch so the path-safety
// logic stays auditable per backend.
//
// Skills are created during a Load pass and immutable afterwards.
type Skill struct {
	// Slug is the derived identity, unique across the registry.
	Slug string

	// Meta is the validated metadata record.
	Meta *skillmd.Metadata

	// Dir and SkillFile are set for directory-backed skills: the absolute
	// path of the containing directory and of its metadata document.
	Dir       string
	SkillFile string

	// ArchivePath and ArchivePrefix are set for archive-backed skills: the
	// absolute path of the archive file and the internal path prefix
	// (possibly empty, otherwise ending in "/") locating the metadata
	// document within it.
	ArchivePath   string
	ArchivePrefix string

	// Resources holds the absolute paths of the skill's auxiliary files,
	// excluding the metadata document. Computed eagerly for directory-backed
	// skills; archive-backed skills enumerate entries per request instead.
	Resources []string
}

// Archived reports whether the skill is archive-backed.
func (s *Skill) Archived() bool {
	return s.ArchivePath != ""
}
