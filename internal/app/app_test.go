package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/modelgrid/internal/app"
	"github.com/vk/modelgrid/internal/container"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/native"
	"github.com/vk/modelgrid/internal/registry"
	"github.com/vk/modelgrid/internal/rules"
	"github.com/vk/modelgrid/internal/testutil"
)

const libraryModel = `
component "library" "core" {
  description = "core runtime"
  targets     = ["linux_amd64"]
}

component "executable" "app" {
  targets = ["linux_amd64"]
}
`

func TestRun_WritesYAMLReport(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": libraryModel})
	require.NoError(t, result.Err)

	var report app.Report
	require.NoError(t, yaml.Unmarshal([]byte(result.Output), &report))

	require.Len(t, report.Components, 2)
	assert.Equal(t, app.ComponentReport{
		Name:        "core",
		Type:        "Library",
		Description: "core runtime",
		Binaries:    []string{"core:linux_amd64-shared", "core:linux_amd64-static"},
	}, report.Components[0])
	assert.Equal(t, []app.BinaryReport{
		{Name: "core:linux_amd64-shared", Type: "SharedLibrary", Owner: "core", Target: "linux_amd64"},
		{Name: "core:linux_amd64-static", Type: "StaticLibrary", Owner: "core", Target: "linux_amd64"},
		{Name: "app:linux_amd64-exe", Type: "ExecutableBinary", Owner: "app", Target: "linux_amd64"},
	}, report.Binaries)

	assert.Contains(t, result.LogOutput, "Model realized.")
}

func TestRun_WritesJSONReport(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTestWithConfig(context.Background(), t,
		map[string]string{"main.hcl": libraryModel}, app.Config{Output: app.OutputJSON})
	require.NoError(t, result.Err)

	var report app.Report
	require.NoError(t, json.Unmarshal([]byte(result.Output), &report))
	assert.Len(t, report.Binaries, 3)
}

func TestRun_ExtraRulesRunAfterNativeRules(t *testing.T) {
	t.Parallel()

	debug := rules.Typed("Test#debugShared", func(b *rules.Builder[*native.SharedLibrary], lib *native.Library) error {
		bin, err := b.Create("debug")
		if err != nil {
			return err
		}
		bin.SetTarget("debug")
		return nil
	})

	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": libraryModel}, app.WithRules(debug))
	require.NoError(t, result.Err)

	binaries, err := registry.Get[*container.Binaries](context.Background(), result.App.Project().Registry, modelpath.Binaries)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"core:linux_amd64-shared",
		"core:linux_amd64-static",
		"app:linux_amd64-exe",
		"core:debug",
	}, binaries.Names())
}

func TestRun_InvalidRulesAreReportedTogether(t *testing.T) {
	t.Parallel()

	noComponent := rules.Func("Test#noComponent", func(*rules.Builder[*native.SharedLibrary]) {})
	unsupported := rules.Func("Test#unsupported", func(*rules.Builder[*native.ExecutableBinary], *native.Library) {})

	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": libraryModel},
		app.WithRules(noComponent, unsupported))

	require.Error(t, result.Err)
	assert.Empty(t, result.Output, "nothing may be realized")
	assert.ErrorContains(t, result.Err, "Test#noComponent is not a valid ComponentBinaries model rule method.")
	assert.ErrorContains(t, result.Err, "Found no parameter implementing Component.")
	assert.ErrorContains(t, result.Err, "Test#unsupported is not a valid ComponentBinaries model rule method.")
	assert.ErrorContains(t, result.Err, "parameter of type Library does not support binaries of type ExecutableBinary.")

	var invalid *rules.InvalidRuleDeclarationError
	require.ErrorAs(t, result.Err, &invalid)
	assert.Equal(t, "Test#noComponent", invalid.Descriptor)

	// Valid rules are still bound.
	assert.Len(t, result.App.Project().Registry.Rules(modelpath.Binaries), 3)
	assert.Contains(t, result.LogOutput, "Rejected model rule.")
}

func TestRun_RuleFailureAbortsRealization(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := rules.Typed("Test#failing", func(*rules.Builder[*native.StaticLibrary], *native.Library) error {
		return boom
	})

	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": libraryModel},
		app.WithoutNativeRules(), app.WithRules(failing))

	require.ErrorIs(t, result.Err, boom)
	var execErr *registry.RuleExecutionError
	require.ErrorAs(t, result.Err, &execErr)
	assert.Equal(t, "Test#failing", execErr.Descriptor)
	assert.ErrorContains(t, result.Err, "failed to realize model: exception thrown while executing model rule: Test#failing (on binaries): boom")
}

func TestRun_LoadAndComponentErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		model   string
		wantErr string
	}{
		{name: "syntax", model: `component "library" {`, wantErr: "failed to load model: failed to parse HCL file"},
		{name: "unknown type", model: `component "gizmo" "x" {}`, wantErr: `declares unknown type "gizmo" (known types: [executable library])`},
		{name: "bad attribute", model: `component "executable" "x" { flavor = "mild" }`, wantErr: `unsupported attribute "flavor" (string)`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": tc.model})
			assert.ErrorContains(t, result.Err, tc.wantErr)
			assert.Empty(t, result.Output)
		})
	}
}
