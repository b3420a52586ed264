// Logout command clears the current identity.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.session.Logout(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Println("Logged out")
		return nil
	},
}
