// Social command authenticates through a mocked social provider.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var socialProvider string

var socialCmd = &cobra.Command{
	Use:   "social",
	Short: "Log in through a social provider",
	Long: `Social performs a mocked social login, synthesizing the identity
user@<provider>.com.

Example:
  quill social --provider google
  quill social --provider facebook`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.session.SocialLogin(socialProvider); err != nil {
			return fmt.Errorf("social login: %w", err)
		}

		u, _ := s.session.Current()
		if flagJSON {
			return printJSON(u)
		}
		fmt.Printf("Logged in as %s\n", u.Name)
		return nil
	},
}

func init() {
	socialCmd.Flags().StringVar(&socialProvider, "provider", "", "provider: google or facebook (required)")
	_ = socialCmd.MarkFlagRequired("provider")
}
