package domain

import "time"

// Comment hangs off an article. A non-nil UpdatedAt marks it as edited.
// AuthorName follows the same snapshot rule as Article.AuthorName.
type Comment struct {
	ID         string     `json:"id"`
	ArticleID  string     `json:"article_id"`
	OwnerID    string     `json:"owner_id"`
	AuthorName string     `json:"author"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Clone returns a copy safe to hand outside the store.
func (c *Comment) Clone() *Comment {
	cp := *c
	if c.UpdatedAt != nil {
		ts := *c.UpdatedAt
		cp.UpdatedAt = &ts
	}
	return &cp
}
