package store

import (
	"time"

	"github.com/inkpress/publishing-core/internal/core/domain"
)

// seedSecret is the shared credential for the built-in demo accounts.
const seedSecret = "password123"

// Seed loads the built-in dataset, replacing current state. Used on first
// start and whenever snapshots are missing or unreadable.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked()
}

// seedLocked installs the deterministic demo dataset: three accounts (one
// per built-in role), three articles, five comments, and seven tags whose
// counts match the articles that reference them. Caller holds the write
// lock.
func (s *Store) seedLocked() {
	secretHash := ""
	if s.hasher != nil {
		if h, err := s.hasher.Hash(seedSecret); err == nil {
			secretHash = h
		}
	}

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	users := []*domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@example.com", SecretHash: secretHash, Role: domain.RoleAdmin, CreatedAt: day(2023, 1, 1)},
		{ID: "2", Name: "Writer User", Email: "writer@example.com", SecretHash: secretHash, Role: domain.RoleWriter, CreatedAt: day(2023, 1, 2)},
		{ID: "3", Name: "Reader User", Email: "reader@example.com", SecretHash: secretHash, Role: domain.RoleReader, CreatedAt: day(2023, 1, 3)},
	}

	articles := []*domain.Article{
		{
			ID:         "1",
			Title:      "Getting Started with React",
			Body:       "React is a popular JavaScript library for building user interfaces. This guide walks through creating a first app, components, and hooks.",
			Tags:       []string{"React", "JavaScript", "Frontend"},
			OwnerID:    "2",
			AuthorName: "Writer User",
			CreatedAt:  day(2023, 2, 1),
			UpdatedAt:  day(2023, 2, 1),
			Likes:      15,
			Views:      120,
		},
		{
			ID:         "2",
			Title:      "Advanced TypeScript Features",
			Body:       "TypeScript is a powerful superset of JavaScript that adds static types. Generics, union and intersection types, conditional and mapped types.",
			Tags:       []string{"TypeScript", "JavaScript", "Programming"},
			OwnerID:    "1",
			AuthorName: "Admin User",
			CreatedAt:  day(2023, 2, 15),
			UpdatedAt:  day(2023, 2, 16),
			Likes:      28,
			Views:      230,
		},
		{
			ID:         "3",
			Title:      "Testing React Applications with Jest and React Testing Library",
			Body:       "Testing is a crucial part of developing reliable applications. Setting up Jest, writing component tests, and handling async operations.",
			Tags:       []string{"React", "Testing", "Jest", "JavaScript"},
			OwnerID:    "2",
			AuthorName: "Writer User",
			CreatedAt:  day(2023, 3, 5),
			UpdatedAt:  day(2023, 3, 5),
			Likes:      42,
			Views:      310,
		},
	}

	comments := []*domain.Comment{
		{ID: "1", ArticleID: "1", OwnerID: "3", AuthorName: "Reader User", Body: "This was very helpful! I've been struggling with React but this makes it clearer.", CreatedAt: time.Date(2023, 2, 2, 12, 0, 0, 0, time.UTC)},
		{ID: "2", ArticleID: "1", OwnerID: "1", AuthorName: "Admin User", Body: "Great introduction to React. You might want to add a section about hooks in the future.", CreatedAt: time.Date(2023, 2, 3, 8, 30, 0, 0, time.UTC)},
		{ID: "3", ArticleID: "2", OwnerID: "2", AuthorName: "Writer User", Body: "I've been using TypeScript for a while, but I learned some new tricks from this article!", CreatedAt: time.Date(2023, 2, 16, 15, 45, 0, 0, time.UTC)},
		{ID: "4", ArticleID: "3", OwnerID: "3", AuthorName: "Reader User", Body: "Testing has always been a pain point for me. This article makes it much more approachable.", CreatedAt: time.Date(2023, 3, 6, 10, 20, 0, 0, time.UTC)},
		{ID: "5", ArticleID: "3", OwnerID: "1", AuthorName: "Admin User", Body: "Would love to see a follow-up on integration testing with Cypress!", CreatedAt: time.Date(2023, 3, 7, 14, 10, 0, 0, time.UTC)},
	}

	tags := []*domain.Tag{
		{ID: "1", Name: "React", Count: 2},
		{ID: "2", Name: "JavaScript", Count: 3},
		{ID: "3", Name: "Frontend", Count: 1},
		{ID: "4", Name: "TypeScript", Count: 1},
		{ID: "5", Name: "Programming", Count: 1},
		{ID: "6", Name: "Testing", Count: 1},
		{ID: "7", Name: "Jest", Count: 1},
	}

	s.users = make(map[string]*domain.User, len(users))
	for _, u := range users {
		s.users[u.ID] = u
	}
	s.articles = make(map[string]*domain.Article, len(articles))
	for _, a := range articles {
		s.articles[a.ID] = a
	}
	s.comments = make(map[string]*domain.Comment, len(comments))
	for _, c := range comments {
		s.comments[c.ID] = c
	}
	s.tags = make(map[string]*domain.Tag, len(tags))
	for _, t := range tags {
		s.tags[t.ID] = t
	}
}
