// Reset command simulates a password reset request.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetEmail string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Request a password reset",
	Long:  "Reset simulates a password reset request. No email is sent and\nnothing changes; the request always succeeds.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.session.ResetPassword(resetEmail); err != nil {
			return fmt.Errorf("reset password: %w", err)
		}
		fmt.Println("Password reset requested for", resetEmail)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetEmail, "email", "", "email address (required)")
	_ = resetCmd.MarkFlagRequired("email")
}
