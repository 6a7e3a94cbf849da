// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// zipReader exposes an in-memory zip archive.
type zipReader struct {
	zr *zip.Reader
}

func newZipReader(data []byte) (*zipReader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}

	for _, f := range zr.File {
		if err := validateEntryPath(f.Name); err != nil {
			return nil, err
		}
	}

	return &zipReader{zr: zr}, nil
}

func (r *zipReader) Entries() []Entry {
	entries := make([]Entry, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		entries = append(entries, Entry{
			Name: f.Name,
			Dir:  f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/"),
		})
	}
	return entries
}

func (r *zipReader) ReadFile(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name != name {
			continue
		}
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			return nil, fmt.Errorf("entry is a directory: %s", name)
		}
		if f.UncompressedSize64 > MaxFileSize {
			return nil, fmt.Errorf("entry %s exceeds maximum size of %d bytes", name, MaxFileSize)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening zip entry %s: %w", name, err)
		}
		defer func() { _ = rc.Close() }()

		// LimitReader enforces the limit even when the declared size lies.
		content, err := io.ReadAll(io.LimitReader(rc, MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading zip entry %s: %w", name, err)
		}
		if int64(len(content)) > MaxFileSize {
			return nil, fmt.Errorf("entry %s exceeds maximum size of %d bytes", name, MaxFileSize)
		}
		return content, nil
	}

	return nil, fmt.Errorf("entry not found in archive: %s", name)
}
