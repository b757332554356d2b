package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/otherjamesbrown/callsight-cli/pkg/credentials"
)

// AuthCommandDeps holds the dependencies for auth commands.
type AuthCommandDeps struct {
	Store *credentials.Store

	// ReadKey prompts for the API key. Overridable for tests.
	ReadKey func() (string, error)
}

// DefaultAuthDeps returns the default dependencies for production use.
func DefaultAuthDeps() *AuthCommandDeps {
	return &AuthCommandDeps{
		Store:   credentials.NewStore(),
		ReadKey: readKeyFromTerminal,
	}
}

// readKeyFromTerminal prompts for the key without echoing it.
func readKeyFromTerminal() (string, error) {
	fmt.Fprint(os.Stderr, "Gemini API key: ")
	key, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading API key: %w", err)
	}
	return string(key), nil
}

// NewAuthCommand creates the auth command with its subcommands.
func NewAuthCommand(deps *AuthCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultAuthDeps()
	}

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Gemini API key",
		Long: `Manage the API key used to call the completion model.

The key is stored in the platform keyring (` + credentials.KeyringDescription() + `).
The ` + credentials.EnvAPIKey + ` environment variable, when set, takes
precedence over the stored key.`,
	}

	cmd.AddCommand(newAuthSetKeyCommand(deps))
	cmd.AddCommand(newAuthShowCommand(deps))
	cmd.AddCommand(newAuthClearCommand(deps))
	return cmd
}

func newAuthSetKeyCommand(deps *AuthCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key",
		Short: "Store the API key in the system keyring",
		Example: `  # Prompts for the key without echoing it
  callsight auth set-key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := deps.ReadKey()
			if err != nil {
				return err
			}
			if err := deps.Store.SetAPIKey(key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key stored in %s.\n", credentials.KeyringDescription())
			return nil
		},
	}
}

func newAuthShowCommand(deps *AuthCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show where the API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := deps.Store.Source()
			fmt.Fprintf(cmd.OutOrStdout(), "API key source: %s\n", source)
			if key, err := deps.Store.APIKey(); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Key: %s\n", maskKey(key))
			}
			return nil
		},
	}
}

func newAuthClearCommand(deps *AuthCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the API key from the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Store.ClearAPIKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed from the system keyring.")
			return nil
		},
	}
}

// maskKey shows the first four characters of the key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", 8)
}
