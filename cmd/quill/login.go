// Login command authenticates with email and password.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Long: `Login authenticates against the mocked backend. Any password is
accepted; the admin email yields the admin role.

Example:
  quill login --email admin@blog.com --password secret
  quill login --email jane@x.com --password secret --json`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.session.Login(loginEmail, loginPassword); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	u, _ := s.session.Current()
	if flagJSON {
		return printJSON(u)
	}
	fmt.Printf("Logged in as %s (%s)\n", u.Name, u.Role)
	return nil
}
