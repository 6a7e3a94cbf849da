// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/skillz-mcp/skillz/archive"
	"github.com/skillz-mcp/skillz/registry"
	"github.com/skillz-mcp/skillz/skillmd"
)

// Content is a fetched resource in transport-safe form. Text holds either
// the decoded UTF-8 text (Encoding "utf-8") or the base64 rendering of
// binary bytes (Encoding "base64"). MIMEType may be empty.
type Content struct {
	URI      string
	Name     string
	MIMEType string
	Text     string
	Encoding string
}

// Descriptor announces one resource without fetching it.
type Descriptor struct {
	URI      string
	Name     string
	MIMEType string
}

// Resolver translates resource URIs into content for both skill backends.
// Fetch never returns a Go error: every failure becomes an in-band payload
// so one bad resource request cannot fail the enclosing protocol exchange.
type Resolver struct {
	reg *registry.Registry
	log *slog.Logger
}

// NewResolver creates a resolver over the given registry. A nil logger
// falls back to slog.Default().
func NewResolver(reg *registry.Registry, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{reg: reg, log: logger}
}

// Fetch resolves a resource URI to its content. All failures are returned
// as a utf-8 payload whose text starts with "Error:"; callers relay it as-is.
func (r *Resolver) Fetch(uri string) *Content {
	slug, relPath, err := ParseURI(uri)
	if err != nil {
		return r.errContent(uri, "invalid resource URI: %v", err)
	}

	// Traversal defense runs before any filesystem or archive access.
	if err := validateRelPath(relPath); err != nil {
		return r.errContent(uri, "rejected resource path: %v", err)
	}

	skill, err := r.reg.Get(slug)
	if err != nil {
		return r.errContent(uri, "skill not found: %q", slug)
	}

	var data []byte
	if skill.Archived() {
		data, err = readFromArchive(skill, relPath)
	} else {
		data, err = readFromDir(skill, relPath)
	}
	if err != nil {
		return r.errContent(uri, "reading resource %q of skill %q: %v", relPath, slug, err)
	}

	c := &Content{
		URI:      uri,
		Name:     path.Base(relPath),
		MIMEType: MIMEForPath(relPath),
	}
	if utf8.Valid(data) {
		c.Text = string(data)
		c.Encoding = "utf-8"
	} else {
		c.Text = base64.StdEncoding.EncodeToString(data)
		c.Encoding = "base64"
	}
	return c
}

// ListPaths returns the skill's resource paths relative to its root, sorted
// lexically. The metadata document and archive system artifacts are excluded.
func (r *Resolver) ListPaths(skill *registry.Skill) ([]string, error) {
	if !skill.Archived() {
		// The eager index holds sorted absolute paths; rebase onto the dir.
		paths := make([]string, 0, len(skill.Resources))
		for _, abs := range skill.Resources {
			rel, err := filepath.Rel(skill.Dir, abs)
			if err != nil {
				return nil, fmt.Errorf("relativizing %s: %w", abs, err)
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return paths, nil
	}

	rd, err := archive.Open(skill.ArchivePath)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range rd.Entries() {
		if e.Dir {
			continue
		}
		rel, ok := strings.CutPrefix(e.Name, skill.ArchivePrefix)
		if !ok || rel == "" || rel == skillmd.Filename {
			continue
		}
		if isSystemArtifact(e.Name) {
			continue
		}
		paths = append(paths, rel)
	}
	slices.Sort(paths)
	return paths, nil
}

// Instructions re-reads the skill's metadata document and returns the
// markdown body after the frontmatter. Nothing is cached; edits to a
// directory-backed skill are visible on the next call.
func (r *Resolver) Instructions(skill *registry.Skill) (string, error) {
	var content []byte
	var err error
	if skill.Archived() {
		var rd archive.Reader
		rd, err = archive.Open(skill.ArchivePath)
		if err == nil {
			content, err = rd.ReadFile(skill.ArchivePrefix + skillmd.Filename)
		}
	} else {
		content, err = os.ReadFile(skill.SkillFile) //#nosec G304 -- path fixed at registration time
	}
	if err != nil {
		return "", fmt.Errorf("reading metadata document for skill %q: %w", skill.Slug, err)
	}

	_, body, err := skillmd.Parse(content, skill.Slug)
	if err != nil {
		return "", err
	}
	return body, nil
}

// Descriptors builds the announcement list for a skill's resources.
func (r *Resolver) Descriptors(skill *registry.Skill) ([]Descriptor, error) {
	paths, err := r.ListPaths(skill)
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, 0, len(paths))
	for _, p := range paths {
		out = append(out, Descriptor{
			URI:      BuildURI(skill.Slug, p),
			Name:     path.Base(p),
			MIMEType: MIMEForPath(p),
		})
	}
	return out, nil
}

func (r *Resolver) errContent(uri, format string, args ...any) *Content {
	msg := fmt.Sprintf(format, args...)
	r.log.Debug("resource fetch failed", "uri", uri, "error", msg)
	return &Content{
		URI:      uri,
		Text:     "Error: " + msg,
		Encoding: "utf-8",
	}
}

// readFromDir resolves a relative path within a directory-backed skill.
// The resolved absolute path must stay under the skill directory even after
// symlink resolution; this backstops the pre-I/O segment check.
func readFromDir(skill *registry.Skill, relPath string) ([]byte, error) {
	base, err := filepath.EvalSymlinks(skill.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving skill directory: %w", err)
	}

	target := filepath.Join(base, filepath.FromSlash(relPath))
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		return nil, fmt.Errorf("resource does not exist: %w", err)
	}
	if resolved != base && !strings.HasPrefix(resolved, base+string(filepath.Separator)) {
		return nil, fmt.Errorf("resource path escapes the skill directory")
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("resource is not a regular file")
	}
	return os.ReadFile(resolved) //#nosec G304 -- containment verified above
}

// readFromArchive looks up the exact internal entry name for an
// archive-backed skill.
func readFromArchive(skill *registry.Skill, relPath string) ([]byte, error) {
	rd, err := archive.Open(skill.ArchivePath)
	if err != nil {
		return nil, err
	}
	return rd.ReadFile(skill.ArchivePrefix + relPath)
}

func isSystemArtifact(name string) bool {
	if strings.HasPrefix(name, archive.SystemFolder+"/") {
		return true
	}
	return strings.HasSuffix(name, archive.HiddenFileSuffix)
}
