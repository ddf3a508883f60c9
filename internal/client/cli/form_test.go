package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormHappyPath(t *testing.T) {
	var f genForm
	assert.Equal(t, formIdle, f.State())

	require.NoError(t, f.Begin())
	assert.Equal(t, formSubmitting, f.State())

	require.NoError(t, f.Succeed())
	assert.Equal(t, formSucceeded, f.State())

	// "Generate another" goes back through idle.
	require.NoError(t, f.Reset())
	require.NoError(t, f.Begin())
	assert.Equal(t, formSubmitting, f.State())
}

func TestFormRetryAfterFailure(t *testing.T) {
	var f genForm
	require.NoError(t, f.Begin())
	require.NoError(t, f.Fail())
	assert.Equal(t, formFailed, f.State())

	require.NoError(t, f.Reset())
	require.NoError(t, f.Begin())
	require.NoError(t, f.Succeed())
}

func TestFormRejectsIllegalTransitions(t *testing.T) {
	var f genForm

	assert.Error(t, f.Succeed(), "cannot succeed before submitting")
	assert.Error(t, f.Fail(), "cannot fail before submitting")

	require.NoError(t, f.Begin())
	assert.Error(t, f.Begin(), "double submit")
	assert.Error(t, f.Reset(), "reset mid-submission")

	require.NoError(t, f.Succeed())
	assert.Error(t, f.Fail(), "terminal states are final until reset")
}

func TestFormResetFromIdleIsNoop(t *testing.T) {
	var f genForm
	require.NoError(t, f.Reset())
	assert.Equal(t, formIdle, f.State())
}
