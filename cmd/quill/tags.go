// Tags command lists the distinct tags across all posts.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all distinct tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStores()
		if err != nil {
			return err
		}
		defer s.Close()

		tags, err := s.posts.Tags()
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}
		if flagJSON {
			return printJSON(tags)
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}
