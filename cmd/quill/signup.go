// Signup command registers a new account.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	signupEmail    string
	signupPassword string
	signupName     string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Sign up a new account",
	Long: `Signup creates a regular user identity. There is no account
registry, so emails are not checked for uniqueness.

Example:
  quill signup --email jane@x.com --password secret --name "Jane Doe"`,
	Args: cobra.NoArgs,
	RunE: runSignup,
}

func init() {
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "email address (required)")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password (required)")
	signupCmd.Flags().StringVar(&signupName, "name", "", "display name (required)")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	_ = signupCmd.MarkFlagRequired("name")
}

func runSignup(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.session.Signup(signupEmail, signupPassword, signupName); err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	u, _ := s.session.Current()
	if flagJSON {
		return printJSON(u)
	}
	fmt.Printf("Signed up as %s\n", u.Name)
	return nil
}
