// Post add command creates a new blog post.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkmill/inkmill/internal/datauri"
	"github.com/inkmill/inkmill/pkg/types"
)

var (
	addTitle   string
	addContent string
	addExcerpt string
	addTags    []string
	addCover   string
	addPublish bool
	addAttach  []string
)

var postAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new post",
	Long: `Add creates a new post authored by the current identity. Creating a
post requires being logged in. The read time is estimated from the content.

Attachments and the cover image are embedded as data URIs; attachments may
be at most 10 MB, cover images at most 5 MB.

Example:
  quill post add --title "Hello" --content "Body text" --publish
  quill post add --title "Notes" --content "..." --tag Go --tag Testing
  quill post add --title "Slides" --content "..." --attach deck.pdf`,
	Args: cobra.NoArgs,
	RunE: runPostAdd,
}

func init() {
	postAddCmd.Flags().StringVar(&addTitle, "title", "", "post title (required)")
	postAddCmd.Flags().StringVar(&addContent, "content", "", "post content (required)")
	postAddCmd.Flags().StringVar(&addExcerpt, "excerpt", "", "short excerpt")
	postAddCmd.Flags().StringArrayVar(&addTags, "tag", nil, "tag (repeatable)")
	postAddCmd.Flags().StringVar(&addCover, "cover", "", "cover image file, embedded as a data URI")
	postAddCmd.Flags().BoolVar(&addPublish, "publish", false, "publish immediately")
	postAddCmd.Flags().StringArrayVar(&addAttach, "attach", nil, "file to attach (repeatable)")
	_ = postAddCmd.MarkFlagRequired("title")
	_ = postAddCmd.MarkFlagRequired("content")
}

func runPostAdd(cmd *cobra.Command, args []string) error {
	draft := types.PostDraft{
		Title:     addTitle,
		Content:   addContent,
		Excerpt:   addExcerpt,
		Tags:      addTags,
		Published: addPublish,
	}

	if addCover != "" {
		cover, err := datauri.EncodeImage(addCover)
		if err != nil {
			return fmt.Errorf("cover image: %w", err)
		}
		draft.CoverImage = cover.URL
	}
	for _, path := range addAttach {
		f, err := datauri.Encode(path)
		if err != nil {
			return fmt.Errorf("attach %s: %w", path, err)
		}
		draft.AttachedFiles = append(draft.AttachedFiles, f)
	}

	s, err := openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	post, err := s.posts.AddPost(draft)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	if flagJSON {
		return printJSON(post)
	}
	fmt.Println("Created post:", post.ID)
	return nil
}
