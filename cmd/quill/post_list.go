// Post list command queries the post collection.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkmill/inkmill/internal/query"
)

var (
	listSearch string
	listTag    string
	listSort   string
	listAll    bool
)

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published posts",
	Long: `List shows published posts, optionally narrowed by a search term
and a tag, ordered by the selected sort.

Use --all to include drafts, bypassing the published filter.

Example:
  quill post list
  quill post list --search cloud --sort title
  quill post list --tag "Web Development" --sort oldest`,
	Args: cobra.NoArgs,
	RunE: runPostList,
}

func init() {
	postListCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive search over title, excerpt, and content")
	postListCmd.Flags().StringVar(&listTag, "tag", "", "keep only posts carrying this tag")
	postListCmd.Flags().StringVar(&listSort, "sort", query.SortNewest, "sort order: newest, oldest, or title")
	postListCmd.Flags().BoolVar(&listAll, "all", false, "include unpublished drafts, unfiltered and in collection order")
}

func runPostList(cmd *cobra.Command, args []string) error {
	s, err := openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	posts, err := s.posts.Posts()
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	if !listAll {
		posts = query.Apply(posts, query.Filter{
			Search: listSearch,
			Tag:    listTag,
			Sort:   listSort,
		})
	}

	if flagJSON {
		return printJSON(posts)
	}
	printPostTable(posts)
	return nil
}
