// Post featured command shows the featured subset.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var postFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show the featured posts",
	Long:  "Featured shows up to the first three published posts in\ncollection order (newest first).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		featured, err := s.posts.FeaturedPosts()
		if err != nil {
			return fmt.Errorf("featured posts: %w", err)
		}
		if flagJSON {
			return printJSON(featured)
		}
		printPostTable(featured)
		return nil
	},
}
