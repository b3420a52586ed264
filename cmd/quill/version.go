// Version command for the quill CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkmill/inkmill/pkg/inkmill"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quill version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quill", inkmill.Version)
	},
}
