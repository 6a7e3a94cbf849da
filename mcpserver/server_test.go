// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillz-mcp/skillz/logging"
	"github.com/skillz-mcp/skillz/registry"
	"github.com/skillz-mcp/skillz/resources"
)

func setup(t *testing.T) (*registry.Registry, *resources.Resolver) {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "cruncher")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(
		"---\nname: Data Cruncher\ndescription: crunches data\nlicense: Apache-2.0\n"+
			"allowed-tools: bash, python\nx-vendor: acme\n---\n\nCrunch carefully.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "run.py"), []byte("print('x')\n"), 0o644))

	logger := logging.New(logging.WithOutput(io.Discard))
	reg := registry.New(logger)
	require.NoError(t, reg.Load(root))
	return reg, resources.NewResolver(reg, logger)
}

func TestInvocationPayload(t *testing.T) {
	t.Parallel()

	reg, res := setup(t)
	skill, err := reg.Get("data-cruncher")
	require.NoError(t, err)

	payload, err := InvocationPayload(res, skill, "summarize sales.csv")
	require.NoError(t, err)

	var got struct {
		Skill     string         `json:"skill"`
		Task      string         `json:"task"`
		Metadata  map[string]any `json:"metadata"`
		Resources []struct {
			URI      string `json:"URI"`
			Name     string `json:"Name"`
			MIMEType string `json:"MIMEType"`
		} `json:"resources"`
		Instructions string `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(payload, &got))

	assert.Equal(t, "data-cruncher", got.Skill)
	assert.Equal(t, "summarize sales.csv", got.Task)
	assert.Equal(t, "Crunch carefully.\n", got.Instructions)

	assert.Equal(t, "Data Cruncher", got.Metadata["name"])
	assert.Equal(t, "crunches data", got.Metadata["description"])
	assert.Equal(t, "Apache-2.0", got.Metadata["license"])
	assert.Equal(t, []any{"bash", "python"}, got.Metadata["allowed-tools"])
	assert.Equal(t, "acme", got.Metadata["x-vendor"], "unrecognized keys survive into the payload")

	require.Len(t, got.Resources, 1)
	assert.Equal(t, "run.py", got.Resources[0].Name)
	assert.Equal(t, resources.BuildURI("data-cruncher", "scripts/run.py"), got.Resources[0].URI)
}

func TestNew(t *testing.T) {
	t.Parallel()

	reg, res := setup(t)
	s := New(reg, res, "1.2.3")
	require.NotNil(t, s)
}
