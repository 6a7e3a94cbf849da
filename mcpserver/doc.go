// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcpserver is the composition root for the MCP surface: it wires
// the skill registry and resource resolver into a mark3labs/mcp-go server.
// No discovery or resolution logic lives here, only registration.
package mcpserver
