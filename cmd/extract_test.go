package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otherjamesbrown/callsight-cli/config"
	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
	"github.com/otherjamesbrown/callsight-cli/pkg/logging"
	"github.com/otherjamesbrown/callsight-cli/pkg/provider"
	"github.com/otherjamesbrown/callsight-cli/pkg/render"
	"github.com/otherjamesbrown/callsight-cli/pkg/transcript"
)

const testTranscript = `CSM: Dana Alvarez
ACCOUNT: Acme Financial
ARR: $84,000
CALL DATE: June 2, 2026
TRANSCRIPT ID: TXN-20260602-0417
---
Customer: The attribution numbers still do not line up with our dashboard.
CSM: Understood, let me walk through what we are seeing.
`

func writeTestTranscript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "call.txt")
	require.NoError(t, os.WriteFile(path, []byte(testTranscript), 0o644))
	return path
}

// testDeps returns deps wired for offline use; the provider is injected
// per-test.
func testDeps(prov provider.CompletionProvider) *ExtractCommandDeps {
	return &ExtractCommandDeps{
		LoadConfig:     func() (*config.CLIConfig, error) { return config.DefaultConfig(), nil },
		LoadTranscript: transcript.Load,
		ResolveAPIKey:  func() (string, error) { return "test-key", nil },
		NewProvider: func(ctx context.Context, apiKey, model string) (provider.CompletionProvider, error) {
			return prov, nil
		},
		NewLogger: func(cfg *config.CLIConfig) logging.Logger { return logging.NewNopLogger() },
	}
}

func runExtractCommand(t *testing.T, deps *ExtractCommandDeps, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		extractOutput = ""
		extractModel = ""
		extractMock = false
	})
	cmd := NewExtractCommand(deps)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractCommandMock(t *testing.T) {
	path := writeTestTranscript(t)

	out, err := runExtractCommand(t, testDeps(nil), path, "--mock")
	require.NoError(t, err)

	assert.Contains(t, out, "Extracted 6 insights")
	assert.Contains(t, out, "Sales Leadership")
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "ROUTING SUMMARY")
	assert.Contains(t, out, "CSM CLOSED-LOOP CONFIRMATIONS")
	assert.Contains(t, out, "Marchex")
}

func TestExtractCommandJSONOutput(t *testing.T) {
	path := writeTestTranscript(t)

	out, err := runExtractCommand(t, testDeps(nil), path, "--mock", "--output", "json")
	require.NoError(t, err)

	var docs []render.AlertDocument
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 6)

	// Alerts come back ordered by urgency; both critical items lead.
	assert.Equal(t, "critical", docs[0].Urgency)
	assert.Equal(t, "critical", docs[1].Urgency)
	assert.Equal(t, "engineering", docs[0].Destination)
	assert.Equal(t, "4 hours", docs[0].ResponseSLA)
	assert.Equal(t, "Acme Financial", docs[0].Account.Name)
	assert.Equal(t, "Dana Alvarez", docs[0].Account.CSM)
}

func TestExtractCommandFallbackRecovery(t *testing.T) {
	path := writeTestTranscript(t)
	prov := provider.NewCannedProvider("this is not json", mockExtractionResponse)

	out, err := runExtractCommand(t, testDeps(prov), path)
	require.NoError(t, err)
	assert.Equal(t, 2, prov.Calls())
	assert.Contains(t, out, "FALLBACK USED.")
	assert.Contains(t, out, "Extracted 6 insights")
}

func TestExtractCommandBothAttemptsFail(t *testing.T) {
	path := writeTestTranscript(t)
	prov := provider.NewCannedProvider("not json", "still not json")

	out, err := runExtractCommand(t, testDeps(prov), path)
	require.NoError(t, err, "exhausted extraction is not a command failure")
	assert.Contains(t, out, "Extracted 0 insights")
	assert.Contains(t, out, "Both extraction attempts failed")
}

func TestExtractCommandNoInsights(t *testing.T) {
	path := writeTestTranscript(t)
	prov := provider.NewCannedProvider(`{"insights": []}`)

	out, err := runExtractCommand(t, testDeps(prov), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Extracted 0 insights")
	assert.Contains(t, out, insight.EmptyNote)
	assert.Equal(t, 1, prov.Calls())
}

func TestExtractCommandTransportFailure(t *testing.T) {
	path := writeTestTranscript(t)
	prov := &provider.CannedProvider{Err: context.DeadlineExceeded}

	_, err := runExtractCommand(t, testDeps(prov), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction failed")
}

func TestExtractCommandEmptyTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("CSM: Dana\n---\n\n"), 0o644))

	_, err := runExtractCommand(t, testDeps(nil), path, "--mock")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no body text")
}

func TestExtractCommandMissingFile(t *testing.T) {
	_, err := runExtractCommand(t, testDeps(nil), filepath.Join(t.TempDir(), "nope.txt"), "--mock")
	require.Error(t, err)
}

func TestExtractCommandAPIKeyRequired(t *testing.T) {
	path := writeTestTranscript(t)
	deps := testDeps(nil)
	deps.ResolveAPIKey = func() (string, error) { return "", errors.New("no API key configured") }

	_, err := runExtractCommand(t, deps, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key configured")
}
