package resource

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Observer is notified of catalog queries and owned-resource mutations.
type Observer interface {
	CatalogQueried(sort SortKey)
	OwnedMutated(op string)
}

type nopObserver struct{}

func (nopObserver) CatalogQueried(SortKey) {}
func (nopObserver) OwnedMutated(string)    {}

// Owned-resource mutation names reported to the Observer.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// SessionView is what a browse session currently shows.
type SessionView struct {
	ID       string
	Criteria Criteria
	Page     Page[Resource]
	Marks    map[string]Mark
}

type Service interface {
	Browse(ctx context.Context, c Criteria, page int, sessionID string) (Page[Resource], error)
	Facets(ctx context.Context) Facets
	GetCatalogResource(ctx context.Context, id string, sessionID string) (Resource, error)

	StartSession(ctx context.Context) SessionView
	ViewSession(ctx context.Context, sessionID string) (SessionView, error)
	SetSessionCriteria(ctx context.Context, sessionID string, c Criteria) (SessionView, error)
	SetSessionPage(ctx context.Context, sessionID string, page int) (SessionView, error)
	NextPage(ctx context.Context, sessionID string) (SessionView, error)
	PrevPage(ctx context.Context, sessionID string) (SessionView, error)
	ToggleUseful(ctx context.Context, sessionID, resourceID string) (Resource, Mark, error)
	ToggleFavorite(ctx context.Context, sessionID, resourceID string) (Resource, Mark, error)

	ValidateForm(f Form) []FieldError
	ListOwned(ctx context.Context, who Identity, c Criteria, page int) (Page[Resource], error)
	GetOwned(ctx context.Context, who Identity, id string) (Resource, error)
	CreateOwned(ctx context.Context, who Identity, f Form) (Resource, error)
	UpdateOwned(ctx context.Context, who Identity, id string, f Form) (Resource, error)
	DeleteOwned(ctx context.Context, who Identity, id string) error
}

// Options tunes a Service. Zero values select defaults.
type Options struct {
	PageSize int
	Observer Observer
	Logger   *zap.Logger
}

type service struct {
	catalog  *Catalog
	repo     Repository
	editor   *Editor
	sessions *SessionStore
	pageSize int
	observer Observer
	logger   *zap.Logger
}

func NewService(catalog *Catalog, repo Repository, editor *Editor, sessions *SessionStore, opts Options) Service {
	s := &service{
		catalog:  catalog,
		repo:     repo,
		editor:   editor,
		sessions: sessions,
		pageSize: opts.PageSize,
		observer: opts.Observer,
		logger:   opts.Logger,
	}
	if s.pageSize < 1 {
		s.pageSize = DefaultPageSize
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

func (s *service) Browse(ctx context.Context, c Criteria, page int, sessionID string) (Page[Resource], error) {
	matched := FilterAndSort(s.catalog.All(), c)
	if page < 1 || page > TotalPages(len(matched), s.pageSize) {
		return Page[Resource]{}, ErrInvalidPage
	}
	s.observer.CatalogQueried(c.Sort)

	pg := Paginate(matched, s.pageSize, page)
	if sess, ok := s.lookupSession(sessionID); ok {
		sess.Do(func(_ *Browser, o *Overlay) { o.ApplyAll(pg.Items) })
	}
	return pg, nil
}

func (s *service) Facets(ctx context.Context) Facets {
	return CollectFacets(s.catalog.All())
}

func (s *service) GetCatalogResource(ctx context.Context, id string, sessionID string) (Resource, error) {
	r, ok := s.catalog.Get(id)
	if !ok {
		return Resource{}, ErrNotFound
	}
	if sess, ok := s.lookupSession(sessionID); ok {
		sess.Do(func(_ *Browser, o *Overlay) { r = o.Apply(r) })
	}
	return r, nil
}

func (s *service) lookupSession(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return s.sessions.Get(id)
}

func (s *service) StartSession(ctx context.Context) SessionView {
	sess := s.sessions.New()
	var view SessionView
	sess.Do(func(b *Browser, o *Overlay) { view = s.render(sess.ID, b, o) })
	return view
}

func (s *service) ViewSession(ctx context.Context, sessionID string) (SessionView, error) {
	return s.withSession(sessionID, func(b *Browser, o *Overlay) error { return nil })
}

func (s *service) SetSessionCriteria(ctx context.Context, sessionID string, c Criteria) (SessionView, error) {
	return s.withSession(sessionID, func(b *Browser, o *Overlay) error {
		b.SetCriteria(c)
		s.observer.CatalogQueried(c.Sort)
		return nil
	})
}

func (s *service) SetSessionPage(ctx context.Context, sessionID string, page int) (SessionView, error) {
	return s.withSession(sessionID, func(b *Browser, o *Overlay) error {
		if !b.GoTo(page, s.totalPages(b)) {
			return ErrInvalidPage
		}
		return nil
	})
}

func (s *service) NextPage(ctx context.Context, sessionID string) (SessionView, error) {
	return s.withSession(sessionID, func(b *Browser, o *Overlay) error {
		b.Next(s.totalPages(b))
		return nil
	})
}

func (s *service) PrevPage(ctx context.Context, sessionID string) (SessionView, error) {
	return s.withSession(sessionID, func(b *Browser, o *Overlay) error {
		b.Prev()
		return nil
	})
}

func (s *service) ToggleUseful(ctx context.Context, sessionID, resourceID string) (Resource, Mark, error) {
	return s.toggle(sessionID, resourceID, (*Overlay).ToggleUseful)
}

func (s *service) ToggleFavorite(ctx context.Context, sessionID, resourceID string) (Resource, Mark, error) {
	return s.toggle(sessionID, resourceID, (*Overlay).ToggleFavorite)
}

func (s *service) toggle(sessionID, resourceID string, flip func(*Overlay, string) bool) (Resource, Mark, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return Resource{}, Mark{}, ErrSessionNotFound
	}
	r, ok := s.catalog.Get(resourceID)
	if !ok {
		return Resource{}, Mark{}, ErrNotFound
	}

	var mark Mark
	sess.Do(func(_ *Browser, o *Overlay) {
		flip(o, resourceID)
		mark = o.Mark(resourceID)
		r = o.Apply(r)
	})
	return r, mark, nil
}

func (s *service) withSession(sessionID string, fn func(b *Browser, o *Overlay) error) (SessionView, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}

	var (
		view SessionView
		err  error
	)
	sess.Do(func(b *Browser, o *Overlay) {
		if err = fn(b, o); err != nil {
			return
		}
		view = s.render(sess.ID, b, o)
	})
	return view, err
}

func (s *service) totalPages(b *Browser) int {
	return TotalPages(len(FilterAndSort(s.catalog.All(), b.Criteria())), s.pageSize)
}

func (s *service) render(id string, b *Browser, o *Overlay) SessionView {
	pg := Paginate(FilterAndSort(s.catalog.All(), b.Criteria()), s.pageSize, b.Page())

	marks := make(map[string]Mark)
	for _, r := range pg.Items {
		if m := o.Mark(r.ID); m != (Mark{}) {
			marks[r.ID] = m
		}
	}
	o.ApplyAll(pg.Items)

	return SessionView{
		ID:       id,
		Criteria: b.Criteria(),
		Page:     pg,
		Marks:    marks,
	}
}

func (s *service) ValidateForm(f Form) []FieldError {
	return s.editor.Validate(f)
}

func (s *service) ListOwned(ctx context.Context, who Identity, c Criteria, page int) (Page[Resource], error) {
	if err := authorize(who); err != nil {
		return Page[Resource]{}, err
	}

	list, err := s.repo.ListOwned(ctx, who.UserID)
	if err != nil {
		return Page[Resource]{}, err
	}

	matched := FilterAndSort(list, c)
	if page < 1 || page > TotalPages(len(matched), s.pageSize) {
		return Page[Resource]{}, ErrInvalidPage
	}
	return Paginate(matched, s.pageSize, page), nil
}

func (s *service) GetOwned(ctx context.Context, who Identity, id string) (Resource, error) {
	if err := authorize(who); err != nil {
		return Resource{}, err
	}

	list, err := s.repo.ListOwned(ctx, who.UserID)
	if err != nil {
		return Resource{}, err
	}
	if idx := indexOf(list, id); idx >= 0 {
		return list[idx], nil
	}
	return Resource{}, ErrNotFound
}

func (s *service) CreateOwned(ctx context.Context, who Identity, f Form) (Resource, error) {
	if err := authorize(who); err != nil {
		return Resource{}, err
	}

	res, err := s.editor.Create(f)
	if err != nil {
		return Resource{}, err
	}
	if err := s.repo.Create(ctx, who.UserID, res); err != nil {
		return Resource{}, err
	}

	s.observer.OwnedMutated(OpCreate)
	s.logger.Info("owned resource created",
		zap.String("user_id", who.UserID), zap.String("resource_id", res.ID))
	return res, nil
}

func (s *service) UpdateOwned(ctx context.Context, who Identity, id string, f Form) (Resource, error) {
	existing, err := s.GetOwned(ctx, who, id)
	if err != nil {
		return Resource{}, err
	}

	res, err := s.editor.Revise(existing, f)
	if err != nil {
		return Resource{}, err
	}

	found, err := s.repo.Update(ctx, who.UserID, id, res)
	if err != nil {
		return Resource{}, err
	}
	if !found {
		return Resource{}, ErrNotFound
	}

	s.observer.OwnedMutated(OpUpdate)
	s.logger.Info("owned resource updated",
		zap.String("user_id", who.UserID), zap.String("resource_id", id))
	return res, nil
}

func (s *service) DeleteOwned(ctx context.Context, who Identity, id string) error {
	if err := authorize(who); err != nil {
		return err
	}

	found, err := s.repo.Delete(ctx, who.UserID, id)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Debug("delete of unknown owned resource ignored",
			zap.String("user_id", who.UserID), zap.String("resource_id", id))
		return nil
	}

	s.observer.OwnedMutated(OpDelete)
	s.logger.Info("owned resource deleted",
		zap.String("user_id", who.UserID), zap.String("resource_id", id))
	return nil
}

func authorize(who Identity) error {
	if !who.Authenticated || strings.TrimSpace(who.UserID) == "" {
		return ErrUnauthenticated
	}
	return nil
}
