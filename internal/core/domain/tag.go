package domain

import "strings"

// Tag tracks how many articles currently reference its name. Count must equal
// the true reference count after every operation; only the store's tag-delta
// path may touch it.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Clone returns a copy safe to hand outside the store.
func (t *Tag) Clone() *Tag {
	c := *t
	return &c
}

// EqualTagNames compares tag names the way the store does everywhere:
// case-insensitively.
func EqualTagNames(a, b string) bool {
	return strings.EqualFold(a, b)
}

// NormalizeTagName returns the canonical lookup key for a tag name.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
