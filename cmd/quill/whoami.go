// Whoami command prints the current identity.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		u, ok := s.session.Current()
		if !ok {
			fmt.Println("Not logged in")
			return nil
		}
		if flagJSON {
			return printJSON(u)
		}
		fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, u.Role)
		return nil
	},
}
