// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// tarGzReader exposes a gzip-compressed tar archive, fully decoded into
// memory at open time.
type tarGzReader struct {
	entries []Entry
	files   map[string][]byte
}

func newTarGzReader(data []byte) (*tarGzReader, error) {
	tarData, err := decompress(data)
	if err != nil {
		return nil, err
	}

	tr := tar.NewReader(bytes.NewReader(tarData))
	r := &tarGzReader{files: make(map[string][]byte)}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar header: %w", err)
		}

		if err := validateEntryPath(hdr.Name); err != nil {
			return nil, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			r.entries = append(r.entries, Entry{Name: hdr.Name, Dir: true})
			continue
		case tar.TypeSymlink, tar.TypeLink:
			return nil, fmt.Errorf("archive contains disallowed link type: %s", hdr.Name)
		case tar.TypeReg:
			// fall through to content read
		default:
			return nil, fmt.Errorf("archive contains disallowed entry type %d: %s", hdr.Typeflag, hdr.Name)
		}

		if hdr.Size > MaxFileSize {
			return nil, fmt.Errorf("file %s exceeds maximum size of %d bytes", hdr.Name, MaxFileSize)
		}

		content, err := io.ReadAll(io.LimitReader(tr, MaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading tar content for %s: %w", hdr.Name, err)
		}
		if int64(len(content)) > MaxFileSize {
			return nil, fmt.Errorf("file %s exceeds maximum size of %d bytes", hdr.Name, MaxFileSize)
		}

		r.entries = append(r.entries, Entry{Name: hdr.Name})
		r.files[hdr.Name] = content
	}

	return r, nil
}

func (r *tarGzReader) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *tarGzReader) ReadFile(name string) ([]byte, error) {
	content, ok := r.files[name]
	if !ok {
		for _, e := range r.entries {
			if e.Name == name && e.Dir {
				return nil, fmt.Errorf("entry is a directory: %s", name)
			}
		}
		return nil, fmt.Errorf("entry not found in archive: %s", name)
	}
	return content, nil
}

// decompress gunzips data with a size limit to prevent decompression bombs.
func decompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	result, err := io.ReadAll(io.LimitReader(gr, int64(MaxFileSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading gzip data: %w", err)
	}
	if int64(len(result)) > MaxFileSize {
		return nil, fmt.Errorf("decompressed data exceeds maximum size of %d bytes", MaxFileSize)
	}

	return result, nil
}
