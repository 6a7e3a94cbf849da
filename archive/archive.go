// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// Entry is one named member of an archive. Names use forward-slash
// separators as stored; no normalization is applied beyond what the archive
// format itself provides.
type Entry struct {
	Name string
	Dir  bool
}

// Reader is a read-only view of a single-file archive: the list of entry
// names with a directory/file discriminator, and byte access to one entry.
type Reader interface {
	// Entries returns all archive members in archive order.
	Entries() []Entry

	// ReadFile returns the raw bytes of the named file entry. It fails when
	// the entry is absent or is a directory marker.
	ReadFile(name string) ([]byte, error)
}

// MaxFileSize is the maximum size of a single extracted file (100MB).
// This prevents decompression bombs.
const MaxFileSize = 100 * 1024 * 1024

// SystemFolder is the macOS resource-fork folder that zip tools add; its
// entries are archive artifacts, not skill resources.
const SystemFolder = "__MACOSX"

// HiddenFileSuffix marks Finder metadata files carried into archives.
const HiddenFileSuffix = ".DS_Store"

// suffixes recognized as skill archives, in match order.
var zipSuffixes = []string{".zip"}
var tarGzSuffixes = []string{".tar.gz", ".tgz"}

// Supported reports whether the file name carries a recognized archive suffix.
func Supported(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range append(append([]string{}, zipSuffixes...), tarGzSuffixes...) {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// Open reads the archive file at path fully into memory and returns a Reader
// for it. The format is chosen by file suffix. Each call re-reads and
// re-decodes the archive; there is no cross-call cache.
func Open(filePath string) (Reader, error) {
	data, err := os.ReadFile(filePath) //#nosec G304 -- path comes from registry discovery under the configured root
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", filePath, err)
	}

	lower := strings.ToLower(filePath)
	for _, s := range zipSuffixes {
		if strings.HasSuffix(lower, s) {
			return newZipReader(data)
		}
	}
	for _, s := range tarGzSuffixes {
		if strings.HasSuffix(lower, s) {
			return newTarGzReader(data)
		}
	}

	return nil, fmt.Errorf("unsupported archive format: %s", filePath)
}

// validateEntryPath checks that an archive entry path is safe.
// path.Clean resolves all ".." segments; any remaining leading ".."
// means the path escapes the archive root.
func validateEntryPath(p string) error {
	cleaned := path.Clean(p)
	if strings.HasPrefix(cleaned, "..") {
		return fmt.Errorf("path traversal detected in archive: %s", p)
	}
	if path.IsAbs(cleaned) {
		return fmt.Errorf("absolute path not allowed in archive: %s", p)
	}
	return nil
}
