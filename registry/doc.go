// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package registry discovers skill bundles under a configured root and serves
as the canonical lookup for them.

A skill is a directory that directly contains SKILL.md, or a .zip/.tar.gz
archive carrying SKILL.md at its root or inside a single shared top-level
directory. Discovery is one explicit, strictly sequential scan:

	reg := registry.New(logger)
	if err := reg.Load("/srv/skills"); err != nil { ... }
	skill, err := reg.Get("data-cruncher")

Identity is the slug derived from the declared name (see Slugify). Both
slugs and raw names are unique across the registry; duplicates are rejected
in favor of the earlier registration, and the deterministic traversal order
(lexical, subdirectories before sibling archives, skill directories as
leaves) is therefore part of the contract.

Per-entry failures (unreadable directories, corrupt archives, invalid
metadata) are logged through the injected slog.Logger and skipped; only a
missing or non-directory root fails a Load call.
*/
package registry
