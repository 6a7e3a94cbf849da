// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/skillz-mcp/skillz/archive"
	"github.com/skillz-mcp/skillz/skillmd"
)

// Registry is the canonical collection of discovered skills, indexed by slug
// and by raw display name. It is populated by one Load pass; lookups must
// only be issued after Load has returned.
type Registry struct {
	log    *slog.Logger
	bySlug map[string]*Skill
	byName map[string]*Skill
}

// New creates an empty registry with the given injected logger.
// A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		log:    logger,
		bySlug: make(map[string]*Skill),
		byName: make(map[string]*Skill),
	}
}

// Load discovers skills under root and replaces the registry contents.
// The prior contents remain visible until the new scan has completed
// in-memory; the swap at the end is what readers observe.
//
// Traversal is strictly sequential and deterministic: directory entries are
// visited in lexical order, a directory containing SKILL.md is registered as
// a skill and not descended into, and within any directory all
// subdirectories are scanned before sibling archive files. That order is the
// duplicate-resolution contract: directory-backed skills win over
// archive-backed ones, and the first-discovered duplicate wins.
//
// A missing or non-directory root is fatal for the call; every other
// per-entry failure is logged and skipped.
func (r *Registry) Load(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return badRootErrorf("skills root %s: %v", root, err)
	}
	if !info.IsDir() {
		return badRootErrorf("skills root %s is not a directory", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return badRootErrorf("resolving skills root %s: %v", root, err)
	}

	s := &scan{
		log:    r.log,
		bySlug: make(map[string]*Skill),
		byName: make(map[string]*Skill),
	}
	s.walkDir(absRoot)

	r.bySlug = s.bySlug
	r.byName = s.byName
	r.log.Info("skill registry loaded", "root", absRoot, "skills", len(r.bySlug))
	return nil
}

// Get returns the skill registered under slug.
func (r *Registry) Get(slug string) (*Skill, error) {
	s, ok := r.bySlug[slug]
	if !ok {
		return nil, notFoundErrorf("no skill registered with slug %q", slug)
	}
	return s, nil
}

// Has reports whether a skill is registered under slug. It never fails.
func (r *Registry) Has(slug string) bool {
	_, ok := r.bySlug[slug]
	return ok
}

// List returns all registered skills sorted by slug.
func (r *Registry) List() []*Skill {
	out := make([]*Skill, 0, len(r.bySlug))
	for _, s := range r.bySlug {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Skill) int {
		return strings.Compare(a.Slug, b.Slug)
	})
	return out
}

// Len returns the number of registered skills.
func (r *Registry) Len() int {
	return len(r.bySlug)
}

// scan accumulates one Load pass. It is never visible to readers until the
// pass completes.
type scan struct {
	log    *slog.Logger
	bySlug map[string]*Skill
	byName map[string]*Skill
}

// walkDir processes one directory. A directory that directly contains the
// metadata document is a skill leaf: it is registered whole and never
// descended into, even if it has subdirectories.
func (s *scan) walkDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("skipping unreadable directory", "dir", dir, "error", err)
		return
	}

	if _, err := os.Stat(filepath.Join(dir, skillmd.Filename)); err == nil {
		s.registerDirSkill(dir)
		return
	}

	// os.ReadDir sorts entries lexically; subdirectories are scanned before
	// sibling archives so directory-backed skills register first.
	for _, e := range entries {
		if e.IsDir() {
			s.walkDir(filepath.Join(dir, e.Name()))
		}
	}
	for _, e := range entries {
		if !e.IsDir() && archive.Supported(e.Name()) {
			s.tryRegisterArchiveSkill(filepath.Join(dir, e.Name()))
		}
	}
}

// registerDirSkill turns a directory containing SKILL.md into a
// directory-backed skill. Failures are logged and the directory contributes
// no skill.
func (s *scan) registerDirSkill(dir string) {
	skillFile := filepath.Join(dir, skillmd.Filename)

	content, err := os.ReadFile(skillFile) //#nosec G304 -- path discovered under the configured skills root
	if err != nil {
		s.log.Warn("skipping skill directory", "path", skillFile, "error", err)
		return
	}

	meta, _, err := skillmd.Parse(content, skillFile)
	if err != nil {
		s.log.Warn("skipping skill with invalid metadata", "error", err)
		return
	}

	s.add(&Skill{
		Slug:      Slugify(meta.Name),
		Meta:      meta,
		Dir:       dir,
		SkillFile: skillFile,
		Resources: collectResources(s.log, dir, skillFile),
	})
}

// tryRegisterArchiveSkill attempts to register an archive file as a skill.
// The metadata document must sit at the archive root or inside exactly one
// top-level directory shared by all entries; otherwise, or on any read or
// parse failure, the archive is skipped.
func (s *scan) tryRegisterArchiveSkill(path string) {
	rd, err := archive.Open(path)
	if err != nil {
		s.log.Warn("skipping unreadable archive", "path", path, "error", err)
		return
	}

	prefix, ok := metadataPrefix(rd.Entries())
	if !ok {
		s.log.Debug("archive contains no skill metadata document", "path", path)
		return
	}

	internal := prefix + skillmd.Filename
	content, err := rd.ReadFile(internal)
	if err != nil {
		s.log.Warn("skipping archive", "path", path, "error", err)
		return
	}

	meta, _, err := skillmd.Parse(content, path+"!"+internal)
	if err != nil {
		s.log.Warn("skipping archive with invalid metadata", "error", err)
		return
	}

	s.add(&Skill{
		Slug:          Slugify(meta.Name),
		Meta:          meta,
		ArchivePath:   path,
		ArchivePrefix: prefix,
	})
}

// add enforces the two independent uniqueness constraints: slug and raw
// display name. The earlier-registered skill always wins.
func (s *scan) add(skill *Skill) {
	source := skill.Dir
	if skill.Archived() {
		source = skill.ArchivePath
	}

	if existing, ok := s.bySlug[skill.Slug]; ok {
		s.log.Warn("duplicate skill slug, keeping earlier registration",
			"slug", skill.Slug, "rejected", source, "kept", sourceOf(existing))
		return
	}
	if existing, ok := s.byName[skill.Meta.Name]; ok {
		s.log.Warn("duplicate skill name, keeping earlier registration",
			"name", skill.Meta.Name, "rejected", source, "kept", sourceOf(existing))
		return
	}

	s.bySlug[skill.Slug] = skill
	s.byName[skill.Meta.Name] = skill
	s.log.Info("registered skill", "slug", skill.Slug, "name", skill.Meta.Name, "source", source)
}

func sourceOf(s *Skill) string {
	if s.Archived() {
		return s.ArchivePath
	}
	return s.Dir
}

// collectResources eagerly lists every file under a skill directory except
// the metadata document, as sorted absolute paths. Walk failures are logged;
// the skill still registers with whatever was collected.
func collectResources(log *slog.Logger, dir, skillFile string) []string {
	var resources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			log.Warn("skipping unreadable entry in skill directory", "path", path, "error", walkErr)
			return nil
		}
		if d.IsDir() || path == skillFile {
			return nil
		}
		resources = append(resources, path)
		return nil
	})
	if err != nil {
		log.Warn("walking skill directory", "dir", dir, "error", err)
	}
	slices.Sort(resources)
	return resources
}

// metadataPrefix locates the metadata document within an archive: at the
// root (empty prefix) or inside exactly one top-level directory common to
// all entries ("<topdir>/"). System artifacts such as __MACOSX folders and
// .DS_Store files do not count toward the common-topdir computation.
func metadataPrefix(entries []archive.Entry) (string, bool) {
	// Root-level metadata wins outright, whatever else sits beside it.
	// Checked in full before the topdir computation so the answer never
	// depends on entry order.
	for _, e := range entries {
		if e.Name == skillmd.Filename && !e.Dir {
			return "", true
		}
	}

	topdirs := make(map[string]bool)
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name, "/")
		top, _, nested := strings.Cut(name, "/")
		if top == archive.SystemFolder || strings.HasSuffix(name, archive.HiddenFileSuffix) {
			continue
		}
		if !nested && !e.Dir {
			// A loose file at the archive root rules out a shared topdir.
			return "", false
		}
		topdirs[top] = true
	}

	if len(topdirs) != 1 {
		return "", false
	}

	var top string
	for t := range topdirs {
		top = t
	}
	prefix := top + "/"
	for _, e := range entries {
		if e.Name == prefix+skillmd.Filename && !e.Dir {
			return prefix, true
		}
	}
	return "", false
}
