// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/skillz-mcp/skillz/registry"
	"github.com/skillz-mcp/skillz/resources"
)

// ServerName identifies this server in the MCP initialize handshake.
const ServerName = "skillz"

// skillInvocation is the JSON payload returned when a skill tool is called.
// The client receives everything it needs to apply the skill: the validated
// metadata, the announced resources, and the instruction body.
type skillInvocation struct {
	Skill        string                 `json:"skill"`
	Task         string                 `json:"task"`
	Metadata     map[string]any         `json:"metadata"`
	Resources    []resources.Descriptor `json:"resources"`
	Instructions string                 `json:"instructions"`
}

// New wires the registry and resolver into an MCP server: one tool per
// skill, one announced resource per skill file, and a fallback fetch tool
// for URIs the client constructs itself.
func New(reg *registry.Registry, res *resources.Resolver, version string) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
	)

	for _, skill := range reg.List() {
		registerSkillTool(s, res, skill)
		registerSkillResources(s, res, skill)
	}

	s.AddTool(
		mcp.NewTool("fetch_skill_resource",
			mcp.WithDescription("Fetch one skill resource by its resource://skillz/ URI."),
			mcp.WithString("uri",
				mcp.Required(),
				mcp.Description("Resource URI as announced by a skill tool."),
			),
		),
		func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			uri, err := req.RequireString("uri")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			c := res.Fetch(uri)
			out, err := json.Marshal(c)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("encoding resource content: %v", err)), nil
			}
			return mcp.NewToolResultText(string(out)), nil
		},
	)

	return s
}

// ServeStdio runs the server over stdin/stdout until the stream closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func registerSkillTool(s *server.MCPServer, res *resources.Resolver, skill *registry.Skill) {
	tool := mcp.NewTool(skill.Slug,
		mcp.WithDescription(skill.Meta.Description),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("What the skill should be applied to."),
		),
	)

	s.AddTool(tool, func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		task, err := req.RequireString("task")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		payload, err := InvocationPayload(res, skill, task)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	})
}

// InvocationPayload builds the JSON document a skill tool returns.
func InvocationPayload(res *resources.Resolver, skill *registry.Skill, task string) ([]byte, error) {
	descs, err := res.Descriptors(skill)
	if err != nil {
		return nil, fmt.Errorf("listing resources of skill %q: %w", skill.Slug, err)
	}
	instructions, err := res.Instructions(skill)
	if err != nil {
		return nil, fmt.Errorf("reading instructions of skill %q: %w", skill.Slug, err)
	}

	meta := map[string]any{
		"name":        skill.Meta.Name,
		"description": skill.Meta.Description,
	}
	if skill.Meta.License != "" {
		meta["license"] = skill.Meta.License
	}
	if len(skill.Meta.AllowedTools) > 0 {
		meta["allowed-tools"] = skill.Meta.AllowedTools
	}
	for k, v := range skill.Meta.Extra {
		meta[k] = v
	}

	if descs == nil {
		descs = []resources.Descriptor{}
	}
	return json.Marshal(skillInvocation{
		Skill:        skill.Slug,
		Task:         task,
		Metadata:     meta,
		Resources:    descs,
		Instructions: instructions,
	})
}

// registerSkillResources announces every auxiliary file of a skill as an MCP
// resource. Reads go through the resolver, so the same traversal and
// classification rules apply as for the fallback fetch tool.
func registerSkillResources(s *server.MCPServer, res *resources.Resolver, skill *registry.Skill) {
	descs, err := res.Descriptors(skill)
	if err != nil {
		// Registration happens once at startup; a skill whose resources
		// cannot be listed still serves its tool.
		return
	}

	for _, d := range descs {
		opts := []mcp.ResourceOption{
			mcp.WithResourceDescription(fmt.Sprintf("Resource %s of skill %s", d.Name, skill.Slug)),
		}
		if d.MIMEType != "" {
			opts = append(opts, mcp.WithMIMEType(d.MIMEType))
		}
		resource := mcp.NewResource(d.URI, d.Name, opts...)

		s.AddResource(resource, func(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			c := res.Fetch(req.Params.URI)
			if c.Encoding == "base64" {
				return []mcp.ResourceContents{mcp.BlobResourceContents{
					URI:      c.URI,
					MIMEType: c.MIMEType,
					Blob:     c.Text,
				}}, nil
			}
			return []mcp.ResourceContents{mcp.TextResourceContents{
				URI:      c.URI,
				MIMEType: c.MIMEType,
				Text:     c.Text,
			}}, nil
		})
	}
}
