package blog

import (
	"time"

	"github.com/inkmill/inkmill/pkg/types"
)

// seedAuthorID is the identity id embedded in the built-in posts. It is a
// historical snapshot and intentionally differs from types.AdminID: the
// admin earned the "admin-1" id later, and author snapshots are never
// re-synced.
const seedAuthorID = "1"

// seedAuthor is the author snapshot embedded in the built-in posts.
var seedAuthor = types.User{
	ID:        seedAuthorID,
	Email:     types.AdminEmail,
	Name:      types.AdminName,
	Role:      types.RoleAdmin,
	CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
}

// seedPosts returns the built-in example posts used to bootstrap an empty
// store. Each call builds fresh values so callers may mutate the result.
// The seed runs once: storage that already holds a collection is never
// overwritten by it.
func seedPosts() []*types.BlogPost {
	return []*types.BlogPost{
		{
			ID:      "1",
			Title:   "Getting Started with Modern Web Development",
			Content: "In this comprehensive guide, we'll explore the fundamentals of modern web development...",
			Excerpt: "Learn the essential skills needed to become a successful web developer in 2024.",
			Author:  seedAuthor,
			Tags:    []string{"Web Development", "JavaScript", "React"},
			CoverImage: "https://images.pexels.com/photos/11035380/pexels-photo-11035380.jpeg" +
				"?auto=compress&cs=tinysrgb&w=1200",
			Published: true,
			CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			ReadTime:  8,
		},
		{
			ID:      "2",
			Title:   "The Future of Artificial Intelligence",
			Content: "Artificial Intelligence is revolutionizing every industry...",
			Excerpt: "Discover how AI is shaping our future and what it means for businesses and individuals.",
			Author:  seedAuthor,
			Tags:    []string{"AI", "Technology", "Future"},
			CoverImage: "https://images.pexels.com/photos/8386440/pexels-photo-8386440.jpeg" +
				"?auto=compress&cs=tinysrgb&w=1200",
			Published: true,
			CreatedAt: time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 20, 14, 30, 0, 0, time.UTC),
			ReadTime:  12,
		},
		{
			ID:      "3",
			Title:   "Building Scalable Applications with Cloud Computing",
			Content: "Cloud computing has transformed how we build and deploy applications...",
			Excerpt: "Learn best practices for building scalable applications using cloud technologies.",
			Author:  seedAuthor,
			Tags:    []string{"Cloud Computing", "AWS", "Scalability"},
			CoverImage: "https://images.pexels.com/photos/325229/pexels-photo-325229.jpeg" +
				"?auto=compress&cs=tinysrgb&w=1200",
			Published: true,
			CreatedAt: time.Date(2024, 1, 25, 9, 15, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 25, 9, 15, 0, 0, time.UTC),
			ReadTime:  10,
		},
	}
}
