// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package archive provides a read-only view over single-file skill archives.

Two formats are supported behind the one Reader abstraction: zip (.zip) and
gzip-compressed tar (.tar.gz, .tgz). Open picks the format by suffix, decodes
the archive fully into memory, and never writes to it.

	r, err := archive.Open("skills/crunch.zip")
	for _, e := range r.Entries() { ... }
	data, err := r.ReadFile("top/SKILL.md")

Entries with link types, device types, absolute paths, or traversal sequences
are rejected at open time, and per-file size limits guard against
decompression bombs.
*/
package archive
