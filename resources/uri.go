// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"fmt"
	"net/url"
	"strings"
)

// URIPrefix is the fixed scheme and authority every skill resource URI
// starts with.
const URIPrefix = "resource://skillz/"

// BuildURI renders the public identifier for one resource of one skill.
// Each path segment is percent-encoded individually so the segment
// separators survive encoding; ParseURI inverts the result exactly.
func BuildURI(slug, relPath string) string {
	return URIPrefix + url.PathEscape(slug) + "/" + escapePath(relPath)
}

// ParseURI splits a resource URI back into its slug and relative path.
// It fails when the prefix is wrong, when either portion is empty, or when
// a segment carries invalid percent-encoding.
func ParseURI(uri string) (slug, relPath string, err error) {
	rest, ok := strings.CutPrefix(uri, URIPrefix)
	if !ok {
		return "", "", fmt.Errorf("URI %q does not start with %s", uri, URIPrefix)
	}

	encSlug, encPath, found := strings.Cut(rest, "/")
	if !found || encSlug == "" || encPath == "" {
		return "", "", fmt.Errorf("URI %q is missing a slug or resource path", uri)
	}

	slug, err = url.PathUnescape(encSlug)
	if err != nil {
		return "", "", fmt.Errorf("decoding slug of %q: %w", uri, err)
	}
	relPath, err = unescapePath(encPath)
	if err != nil {
		return "", "", fmt.Errorf("decoding resource path of %q: %w", uri, err)
	}
	return slug, relPath, nil
}

// validateRelPath rejects traversal attempts in a decoded relative path.
// It runs before any filesystem or archive access; the directory backend
// additionally re-checks the fully resolved path.
func validateRelPath(relPath string) error {
	if strings.HasPrefix(relPath, "/") {
		return fmt.Errorf("path traversal attempt: resource path %q must be relative", relPath)
	}
	for _, seg := range strings.Split(relPath, "/") {
		if seg == ".." {
			return fmt.Errorf("path traversal attempt: resource path %q contains a parent segment", relPath)
		}
	}
	return nil
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

func unescapePath(p string) (string, error) {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		dec, err := url.PathUnescape(s)
		if err != nil {
			return "", err
		}
		segs[i] = dec
	}
	return strings.Join(segs, "/"), nil
}
