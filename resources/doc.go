// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

// Package resources resolves resource://skillz/ URIs into transport-safe
// content for directory-backed and archive-backed skills alike. Fetch is
// deliberately infallible at the Go level: malformed URIs, unknown skills,
// traversal attempts and missing files all come back as in-band "Error:"
// payloads, keeping a single bad resource request from failing the protocol
// exchange that carried it.
package resources
