package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"event-planner/internal/auth"
)

const sessionFile = "session.token"

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the planner account",
	}
	cmd.AddCommand(
		credentialsCmd("signup", "Create an account and sign in", appSignUp),
		credentialsCmd("signin", "Sign in to an existing account", appSignIn),
		signOutCmd(),
		whoamiCmd(),
	)
	return cmd
}

func appSignUp(cmd *cobra.Command, email, password string) (auth.Session, error) {
	return appCtx.auth.SignUp(cmd.Context(), email, password)
}

func appSignIn(cmd *cobra.Command, email, password string) (auth.Session, error) {
	return appCtx.auth.SignIn(cmd.Context(), email, password)
}

// auth signup|signin <email> -p <password>: store the session token locally.
func credentialsCmd(use, short string, run func(*cobra.Command, string, string) (auth.Session, error)) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := run(cmd, args[0], password)
			if err != nil {
				return err
			}
			if err := saveToken(s.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s until %s\n", s.Email, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func signOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and revoke the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err != nil {
				return err
			}
			if err := appCtx.auth.SignOut(cmd.Context(), token); err != nil && !errors.Is(err, auth.ErrBadToken) {
				return err
			}
			if err := os.Remove(tokenPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := loadToken()
			if err != nil {
				return err
			}
			c, err := appCtx.auth.Verify(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("session is no longer valid, sign in again: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Email)
			return nil
		},
	}
}

func tokenPath() string {
	return filepath.Join(cfg.DataDir, sessionFile)
}

func saveToken(token string) error {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(tokenPath(), []byte(token+"\n"), 0o600)
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return "", errors.New("not signed in")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
