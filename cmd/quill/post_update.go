// Post update command applies a partial update to a post.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkmill/inkmill/internal/datauri"
	"github.com/inkmill/inkmill/pkg/types"
)

var (
	updTitle    string
	updContent  string
	updExcerpt  string
	updTags     []string
	updCover    string
	updReadTime int
	updAttach   []string
	updPublish  bool
	updDraft    bool
)

var postUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a post",
	Long: `Update merges the given flags into the post. Only flags that are
set change anything; the post's ID, author, and creation time never change,
and the update time is always refreshed. Changing --content re-estimates
the read time unless --read-time is also given.

Example:
  quill post update 3 --title "New Title"
  quill post update 3 --publish
  quill post update 3 --draft --tag Go
  quill post update 3 --cover sunrise.jpg --attach deck.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPostUpdate,
}

func init() {
	postUpdateCmd.Flags().StringVar(&updTitle, "title", "", "new title")
	postUpdateCmd.Flags().StringVar(&updContent, "content", "", "new content")
	postUpdateCmd.Flags().StringVar(&updExcerpt, "excerpt", "", "new excerpt")
	postUpdateCmd.Flags().StringArrayVar(&updTags, "tag", nil, "replace tags (repeatable)")
	postUpdateCmd.Flags().StringVar(&updCover, "cover", "", "replace the cover image, embedded as a data URI")
	postUpdateCmd.Flags().IntVar(&updReadTime, "read-time", 0, "read time in minutes, overriding the estimate")
	postUpdateCmd.Flags().StringArrayVar(&updAttach, "attach", nil, "replace attachments with this file (repeatable)")
	postUpdateCmd.Flags().BoolVar(&updPublish, "publish", false, "publish the post")
	postUpdateCmd.Flags().BoolVar(&updDraft, "draft", false, "unpublish the post")
	postUpdateCmd.MarkFlagsMutuallyExclusive("publish", "draft")
}

// buildPostUpdate turns the changed flags into a partial update. New content
// carries a fresh read-time estimate with it; an explicit --read-time wins.
func buildPostUpdate(cmd *cobra.Command) (types.PostUpdate, error) {
	var update types.PostUpdate
	if cmd.Flags().Changed("title") {
		update.Title = &updTitle
	}
	if cmd.Flags().Changed("content") {
		update.Content = &updContent
		estimate := types.EstimateReadTime(updContent)
		update.ReadTime = &estimate
	}
	if cmd.Flags().Changed("excerpt") {
		update.Excerpt = &updExcerpt
	}
	if cmd.Flags().Changed("tag") {
		update.Tags = &updTags
	}
	if cmd.Flags().Changed("read-time") {
		update.ReadTime = &updReadTime
	}
	if cmd.Flags().Changed("cover") {
		cover, err := datauri.EncodeImage(updCover)
		if err != nil {
			return types.PostUpdate{}, fmt.Errorf("cover image: %w", err)
		}
		update.CoverImage = &cover.URL
	}
	if cmd.Flags().Changed("attach") {
		files := make([]types.AttachedFile, 0, len(updAttach))
		for _, path := range updAttach {
			f, err := datauri.Encode(path)
			if err != nil {
				return types.PostUpdate{}, fmt.Errorf("attach %s: %w", path, err)
			}
			files = append(files, f)
		}
		update.AttachedFiles = &files
	}
	if updPublish || updDraft {
		published := updPublish
		update.Published = &published
	}
	return update, nil
}

func runPostUpdate(cmd *cobra.Command, args []string) error {
	update, err := buildPostUpdate(cmd)
	if err != nil {
		return err
	}

	s, err := openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	post, err := s.posts.UpdatePost(args[0], update)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if flagJSON {
		return printJSON(post)
	}
	fmt.Println("Updated post:", post.ID)
	return nil
}
