package domain

import "time"

// Article is the core content aggregate. AuthorName is a snapshot of the
// owner's display name taken when the article is written; a later profile
// rename does not rewrite it.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Tags       []string  `json:"tags"`
	OwnerID    string    `json:"owner_id"`
	AuthorName string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Views      int64     `json:"views"`
	Likes      int64     `json:"likes"`
}

// Clone returns a deep copy, including the tag slice.
func (a *Article) Clone() *Article {
	c := *a
	c.Tags = append([]string(nil), a.Tags...)
	return &c
}

// HasTag reports whether the article references the tag name,
// case-insensitively.
func (a *Article) HasTag(name string) bool {
	for _, t := range a.Tags {
		if EqualTagNames(t, name) {
			return true
		}
	}
	return false
}
