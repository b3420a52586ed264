// Post command group for the quill CLI.
package main

import "github.com/spf13/cobra"

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage blog posts",
}

func init() {
	postCmd.AddCommand(postAddCmd)
	postCmd.AddCommand(postGetCmd)
	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postUpdateCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postFeaturedCmd)
}
