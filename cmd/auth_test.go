package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/otherjamesbrown/callsight-cli/pkg/credentials"
)

func runAuthCommand(t *testing.T, deps *AuthCommandDeps, args ...string) (string, error) {
	t.Helper()
	cmd := NewAuthCommand(deps)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAuthCommands(t *testing.T) {
	keyring.MockInit()
	t.Setenv(credentials.EnvAPIKey, "")

	deps := &AuthCommandDeps{
		Store:   credentials.NewStore(),
		ReadKey: func() (string, error) { return "AIzaTestKey1234", nil },
	}

	t.Run("set-key stores the key", func(t *testing.T) {
		out, err := runAuthCommand(t, deps, "set-key")
		require.NoError(t, err)
		assert.Contains(t, out, "API key stored")
	})

	t.Run("show masks the key", func(t *testing.T) {
		out, err := runAuthCommand(t, deps, "show")
		require.NoError(t, err)
		assert.Contains(t, out, "AIza")
		assert.NotContains(t, out, "AIzaTestKey1234")
	})

	t.Run("clear removes the key", func(t *testing.T) {
		_, err := runAuthCommand(t, deps, "clear")
		require.NoError(t, err)

		out, err := runAuthCommand(t, deps, "show")
		require.NoError(t, err)
		assert.Contains(t, out, "not configured")
	})
}

func TestAuthSetKeyRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	deps := &AuthCommandDeps{
		Store:   credentials.NewStore(),
		ReadKey: func() (string, error) { return "   ", nil },
	}

	_, err := runAuthCommand(t, deps, "set-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "AIza********", maskKey("AIzaTestKey1234"))
	assert.Equal(t, "***", maskKey("abc"))
}
