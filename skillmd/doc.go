// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package skillmd parses SKILL.md documents: a YAML frontmatter header block
delimited by "---" lines, followed by a free-text instructions body.

The header declares the skill's name, description, optional license, and an
allowed-tools list that may be written either as a comma-separated string or
as a YAML sequence. All other header keys are preserved verbatim in
Metadata.Extra for forward compatibility.

	meta, body, err := skillmd.Parse(content, "skills/foo/SKILL.md")

Parse failures are *ValidationError values naming the offending document, so
discovery can log and skip a bad skill without aborting the scan.
*/
package skillmd
