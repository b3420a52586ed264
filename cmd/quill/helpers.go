// Shared helpers for quill CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/inkmill/inkmill/internal/blog"
	"github.com/inkmill/inkmill/internal/kv"
	"github.com/inkmill/inkmill/internal/session"
	"github.com/inkmill/inkmill/pkg/types"
)

// stores bundles the attached state stores for one command invocation.
// The caller must defer Close.
type stores struct {
	kv      kv.Store
	session *session.Store
	posts   *blog.Repository
}

// openStores resolves the data directory, opens the configured storage
// backend, and attaches the session store and post repository on top of it.
func openStores() (*stores, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:         configBackend,
		DataDir:         dataDir,
		SimulateLatency: configSimulateLatency,
	}

	store, err := kv.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	sessOpts := []session.Option{session.WithLogger(logger)}
	if !cfg.SimulateLatency {
		sessOpts = append(sessOpts, session.WithDelays(0, 0))
	}
	sess := session.New(store, sessOpts...)
	if err := sess.Attach(); err != nil {
		store.Close()
		return nil, fmt.Errorf("attach session store: %w", err)
	}

	repo := blog.NewRepository(store, sess, blog.WithLogger(logger))
	if err := repo.Attach(); err != nil {
		sess.Detach()
		store.Close()
		return nil, fmt.Errorf("attach post repository: %w", err)
	}

	return &stores{kv: store, session: sess, posts: repo}, nil
}

// Close detaches both stores and closes the storage backend.
func (s *stores) Close() {
	_ = s.posts.Detach()
	_ = s.session.Detach()
	_ = s.kv.Close()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// printPostTable prints posts in a human-readable table format.
func printPostTable(posts []*types.BlogPost) {
	if len(posts) == 0 {
		fmt.Println("No posts.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPUBLISHED\tCREATED\tTAGS")
	for _, p := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\n",
			p.ID,
			p.Title,
			p.Author.Name,
			p.Published,
			p.CreatedAt.Format("2006-01-02"),
			strings.Join(p.Tags, ","),
		)
	}
	w.Flush()
}

// printPost prints one post in detail.
func printPost(p *types.BlogPost) {
	fmt.Println("ID:       ", p.ID)
	fmt.Println("Title:    ", p.Title)
	fmt.Println("Author:   ", p.Author.Name, "<"+p.Author.Email+">")
	fmt.Println("Published:", p.Published)
	fmt.Println("Created:  ", p.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println("Updated:  ", p.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Read time: %d min\n", p.ReadTime)
	if len(p.Tags) > 0 {
		fmt.Println("Tags:     ", strings.Join(p.Tags, ", "))
	}
	if p.CoverImage != "" {
		fmt.Println("Cover:    ", p.CoverImage)
	}
	if len(p.AttachedFiles) > 0 {
		names := make([]string, len(p.AttachedFiles))
		for i, f := range p.AttachedFiles {
			names[i] = f.Name
		}
		fmt.Println("Files:    ", strings.Join(names, ", "))
	}
	if p.Excerpt != "" {
		fmt.Println("Excerpt:  ", p.Excerpt)
	}
	fmt.Println()
	fmt.Println(p.Content)
}
