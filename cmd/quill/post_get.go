// Post get command shows a single post.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var postGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a post by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		post, err := s.posts.GetPost(args[0])
		if err != nil {
			return fmt.Errorf("get post: %w", err)
		}

		if flagJSON {
			return printJSON(post)
		}
		printPost(post)
		return nil
	},
}
