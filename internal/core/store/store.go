// Package store owns the four entity collections (users, articles, comments,
// tags) and is the only code allowed to mutate them. Every mutating
// operation authorizes first, applies all of its effects under one write
// lock, and hands the affected collections to the persistence sink
// afterwards; a failed operation changes nothing.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkpress/publishing-core/internal/api/metrics"
	"github.com/inkpress/publishing-core/internal/core/authz"
	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
	"github.com/inkpress/publishing-core/internal/core/registry"
	"github.com/inkpress/publishing-core/internal/core/session"
)

// Store is the authorization-aware object store. A single RWMutex serializes
// all mutations; reads share the lock and return copies, never interior
// pointers.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	articles map[string]*domain.Article
	comments map[string]*domain.Comment
	tags     map[string]*domain.Tag

	reg     *registry.Registry
	gate    *authz.Gate
	session *session.Holder

	sink   ports.SnapshotSink
	hasher ports.SecretHasher
	notify ports.Notifier
	log    zerolog.Logger

	newID func() string
}

// Options collects the store's injected collaborators. Registry and Session
// default to fresh instances; Hasher is required for the register and
// authenticate paths; Sink and Notifier may be nil to disable persistence
// and notifications.
type Options struct {
	Registry *registry.Registry
	Session  *session.Holder
	Hasher   ports.SecretHasher
	Sink     ports.SnapshotSink
	Notifier ports.Notifier
	Logger   zerolog.Logger
}

// New returns an empty store. Call Seed or LoadSnapshots before serving.
func New(opts Options) *Store {
	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}
	sess := opts.Session
	if sess == nil {
		sess = &session.Holder{}
	}
	notify := opts.Notifier
	if notify == nil {
		notify = nopNotifier{}
	}

	return &Store{
		users:    make(map[string]*domain.User),
		articles: make(map[string]*domain.Article),
		comments: make(map[string]*domain.Comment),
		tags:     make(map[string]*domain.Tag),
		reg:      reg,
		gate:     authz.New(reg),
		session:  sess,
		sink:     opts.Sink,
		hasher:   opts.Hasher,
		notify:   notify,
		log:      opts.Logger,
		newID:    uuid.NewString,
	}
}

// Registry exposes the injected permission registry for read-only surfaces.
func (s *Store) Registry() *registry.Registry { return s.reg }

// Session exposes the current-actor holder.
func (s *Store) Session() *session.Holder { return s.session }

type nopNotifier struct{}

func (nopNotifier) Post(_, _, _ string) {}

// actor resolves an actor id to its live user record. Must be called with at
// least the read lock held. Empty or unknown ids resolve to nil: an
// anonymous actor that every permission check fails closed on.
func (s *Store) actor(id string) *domain.User {
	if id == "" {
		return nil
	}
	return s.users[id]
}

// userByEmail performs the case-insensitive email lookup used by
// registration and authentication. Caller holds the lock.
func (s *Store) userByEmail(email string) *domain.User {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// tagByName finds a tag by case-insensitive name. Caller holds the lock.
func (s *Store) tagByName(name string) *domain.Tag {
	for _, t := range s.tags {
		if domain.EqualTagNames(t.Name, name) {
			return t
		}
	}
	return nil
}

// recordOutcome classifies an operation result for the metrics counter.
func recordOutcome(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnauthorized):
		outcome = "unauthorized"
	case domain.IsNotFound(err):
		outcome = "not_found"
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrTagExists):
		outcome = "conflict"
	case errors.Is(err, domain.ErrInvalidCredentials):
		outcome = "invalid_credentials"
	case errors.Is(err, domain.ErrProtectedRole):
		outcome = "protected_role"
	default:
		outcome = "invalid"
	}
	metrics.OperationsTotal.WithLabelValues(op, outcome).Inc()
}

// ── Read operations ──────────────────────────────────────────────────────────

// GetArticle returns a copy of the article.
func (s *Store) GetArticle(id string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return a.Clone(), nil
}

// ListArticles returns copies of articles matching the filter, newest first.
func (s *Store) ListArticles(f ports.ListArticlesFilter) []*domain.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if f.OwnerID != "" && a.OwnerID != f.OwnerID {
			continue
		}
		if f.Tag != "" && !a.HasTag(f.Tag) {
			continue
		}
		if f.Search != "" && !articleMatches(a, f.Search) {
			continue
		}
		out = append(out, a.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SearchArticles returns articles whose title, body, or any tag contains the
// query, case-insensitively.
func (s *Store) SearchArticles(query string) []*domain.Article {
	return s.ListArticles(ports.ListArticlesFilter{Search: query})
}

func articleMatches(a *domain.Article, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Body), q) {
		return true
	}
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// ArticleComments returns copies of the article's comments, oldest first.
func (s *Store) ArticleComments(articleID string) []*domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Comment, 0)
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			out = append(out, c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// GetUser returns a credential-stripped copy of the user.
func (s *Store) GetUser(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Redacted(), nil
}

// ListUsers returns credential-stripped copies of all users, oldest first.
func (s *Store) ListUsers() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Redacted())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ListTags returns copies of all tags sorted by name.
func (s *Store) ListTags() []*domain.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CurrentUser resolves the session slot to a credential-stripped user copy.
func (s *Store) CurrentUser() (*domain.User, bool) {
	id, ok := s.session.Current()
	if !ok {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return u.Redacted(), true
}
