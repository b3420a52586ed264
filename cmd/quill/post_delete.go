// Post delete command removes a post.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post by ID",
	Long:  "Delete removes the post with the given ID. Deleting an ID that\ndoes not exist is a no-op.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.posts.DeletePost(args[0]); err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		fmt.Println("Deleted post:", args[0])
		return nil
	},
}
