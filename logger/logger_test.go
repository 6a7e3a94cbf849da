// SPDX-FileCopyrightText: Copyright 2026 The Skillz Authors
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/skillz-mcp/skillz/env"
)

// mockDebugProvider implements DebugProvider for testing
type mockDebugProvider struct {
	debug bool
}

func (m *mockDebugProvider) IsDebug() bool {
	return m.debug
}

func TestUnstructuredLogsCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envValue string
		expected bool
	}{
		{"Default Case", "", true},
		{"Explicitly True", "true", true},
		{"Explicitly False", "false", false},
		{"Invalid Value", "not-a-bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := env.MapReader{"UNSTRUCTURED_LOGS": tt.envValue}
			if got := unstructuredLogsWithEnv(reader); got != tt.expected {
				t.Errorf("unstructuredLogsWithEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInitializeWithOptions(t *testing.T) { //nolint:paralleltest // Replaces the global logger
	tests := []struct {
		name       string
		envValue   string
		debug      bool
		wantsDebug bool
	}{
		{"structured info", "false", false, false},
		{"structured debug", "false", true, true},
		{"unstructured debug", "true", true, true},
	}

	for _, tt := range tests { //nolint:paralleltest // Replaces the global logger
		t.Run(tt.name, func(t *testing.T) {
			InitializeWithOptions(
				env.MapReader{"UNSTRUCTURED_LOGS": tt.envValue},
				&mockDebugProvider{debug: tt.debug},
			)

			enabled := zap.L().Core().Enabled(zap.DebugLevel)
			assert.Equal(t, tt.wantsDebug, enabled)
		})
	}
}

func TestNewLogr(t *testing.T) { //nolint:paralleltest // Depends on the global logger
	Initialize()
	lgr := NewLogr()
	assert.NotNil(t, lgr.GetSink())
}
