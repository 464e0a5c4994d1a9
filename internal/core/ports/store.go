package ports

// RegisterInput carries the fields of a self-service registration.
type RegisterInput struct {
	Name   string
	Email  string
	Secret string
	Bio    string
}

// ArticleInput is shared by article create and update: both carry the full
// replacement title, body and tag set.
type ArticleInput struct {
	Title string
	Body  string
	Tags  []string
}

// ProfileInput carries a self-service profile update. Empty fields keep
// their current value; Bio is always applied (clearing it is legitimate).
type ProfileInput struct {
	Name  string
	Email string
	Bio   string
}

// ListArticlesFilter narrows article listings. Zero values mean "no filter".
type ListArticlesFilter struct {
	OwnerID string
	Tag     string
	Search  string
}
