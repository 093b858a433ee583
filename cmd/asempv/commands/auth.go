package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"asempv/internal/logging"
)

func loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ASEMPV_PASSWORD")
			}
			if password == "" {
				var err error
				if password, err = prompt(cmd, "Password: "); err != nil {
					return err
				}
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()
			if _, err := unwrap(wire.Login.Submit(ctx, username, password)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", strings.TrimSpace(username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVar(&password, "password", "", "password (default $ASEMPV_PASSWORD or prompt)")
	return cmd
}

// Terminal hooks, replaced in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// prompt reads a password. On a terminal the input is not echoed; otherwise
// one line is read from stdin.
func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	if f, ok := cmd.InOrStdin().(*os.File); ok && isTerminal(f.Fd()) {
		b, err := readPassword(f.Fd())
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show login state and effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := "logged out"
			if wire.Auth.IsLoggedIn() {
				state = "logged in"
			}
			if output == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"state":       state,
					"base_url":    wire.API.BaseURL(),
					"home":        settings.Home,
					"config_file": settings.File,
					"log_file":    logging.Path(),
					"sealed":      settings.TokenPassphrase != "",
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "State:     %s\n", state)
			fmt.Fprintf(w, "Backend:   %s\n", wire.API.BaseURL())
			fmt.Fprintf(w, "Home:      %s\n", settings.Home)
			if settings.File != "" {
				fmt.Fprintf(w, "Config:    %s\n", settings.File)
			}
			fmt.Fprintf(w, "Log:       %s\n", logging.Path())
			fmt.Fprintf(w, "Sealed:    %v\n", settings.TokenPassphrase != "")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored token pair",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if _, err := unwrap(wire.Auth.Refresh(ctx)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tokens refreshed.")
			return nil
		},
	})
	return cmd
}
