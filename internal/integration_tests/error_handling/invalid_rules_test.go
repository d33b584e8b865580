package integration_tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/modelgrid/internal/app"
	"github.com/vk/modelgrid/internal/modelpath"
	"github.com/vk/modelgrid/internal/native"
	"github.com/vk/modelgrid/internal/rules"
	"github.com/vk/modelgrid/internal/testutil"
)

func TestErrorHandling_RuleWithoutComponentIsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	orphan := rules.Func("OrphanRules#noOwner", func(*rules.Builder[*native.SharedLibrary]) error { return nil })

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": `component "library" "core" {}`},
		app.WithRules(orphan))

	// --- Assert ---
	require.Error(t, result.Err, "expected the run to fail with a rule declaration error")

	var invalid *rules.InvalidRuleDeclarationError
	require.True(t, errors.As(result.Err, &invalid))
	require.Equal(t, "OrphanRules#noOwner", invalid.Descriptor)
	require.Equal(t,
		"ComponentBinaries method must have one parameter implementing Component. Found no parameter implementing Component.",
		invalid.Err.Error())

	// The stock rules were still bound; only the offending rule was dropped.
	require.Len(t, result.App.Project().Registry.Rules(modelpath.Binaries), 3)
	require.Empty(t, result.Output, "no model may be realized")
	require.Contains(t, result.LogOutput, "rule=OrphanRules#noOwner")
}

func TestErrorHandling_UnsupportedBinaryTypeIsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	wrong := rules.Func("WrongRules#exeForLibrary", func(*rules.Builder[*native.ExecutableBinary], *native.Library) {})

	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"main.hcl": `component "library" "core" {}`},
		app.WithRules(wrong))

	// --- Assert ---
	var compat *rules.CompatibilityError
	require.ErrorAs(t, result.Err, &compat)
	require.Contains(t, result.Err.Error(),
		"ComponentBinaries method parameter of type Library does not support binaries of type ExecutableBinary.")
}
