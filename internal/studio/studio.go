// Package studio coordinates the save, load and randomize actions on top of
// a gradient store. It owns id and default name assignment.
package studio

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
	"github.com/alexisbeaulieu97/gradix/internal/random"
	"github.com/alexisbeaulieu97/gradix/internal/render"
	"github.com/alexisbeaulieu97/gradix/internal/store"
	gerrors "github.com/alexisbeaulieu97/gradix/pkg/errors"
)

const defaultNameLayout = "2006-01-02 15:04:05"

// Service is the application entry point used by the CLI, the editor and
// the HTTP server.
type Service struct {
	store     store.Store
	generator *random.Generator
	notifier  Notifier
	now       func() time.Time
	newID     func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithNotifier routes status messages to n.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithGenerator replaces the random gradient source.
func WithGenerator(g *random.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithClock sets the clock used for default names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc sets the id source for newly saved gradients.
func WithIDFunc(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService builds a Service over st.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		generator: random.New(nil, random.DefaultOptions()),
		notifier:  discard{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save normalizes g, assigns an id and a timestamped name when missing and
// upserts it.
func (s *Service) Save(g gradient.Gradient) (gradient.Gradient, error) {
	normalized, err := gradient.Normalize(g)
	if err != nil {
		s.notifier.Notify(LevelError, "Gradient is invalid")
		return gradient.Gradient{}, err
	}

	normalized.ID = strings.TrimSpace(normalized.ID)
	if normalized.ID == "" {
		normalized.ID = s.newID()
	}
	if normalized.Name == "" {
		normalized.Name = fmt.Sprintf("Gradient %s", s.now().Format(defaultNameLayout))
	}

	if err := s.store.Upsert(normalized); err != nil {
		s.notifier.Notify(LevelError, "Failed to save gradient")
		return gradient.Gradient{}, err
	}

	s.notifier.Notify(LevelSuccess, "Gradient saved successfully")
	return normalized, nil
}

// Load returns the saved gradient with id.
func (s *Service) Load(id string) (gradient.Gradient, error) {
	g, err := s.lookup(id)
	if err != nil {
		return gradient.Gradient{}, err
	}
	s.notifier.Notify(LevelSuccess, "Gradient loaded")
	return g, nil
}

// List returns every saved gradient in save order.
func (s *Service) List() ([]gradient.Gradient, error) {
	return s.store.List()
}

// Delete removes the gradient with id. Unknown ids report NotFound.
func (s *Service) Delete(id string) error {
	removed, err := s.store.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return gerrors.NewNotFound(id)
	}
	s.notifier.Notify(LevelSuccess, "Gradient deleted")
	return nil
}

// Clear removes every saved gradient.
func (s *Service) Clear() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.notifier.Notify(LevelSuccess, "All gradients cleared")
	return nil
}

// Random draws a new unsaved gradient.
func (s *Service) Random() (gradient.Gradient, error) {
	g, err := s.generator.Generate()
	if err != nil {
		return gradient.Gradient{}, err
	}
	s.notifier.Notify(LevelSuccess, "Generated a random gradient")
	return g, nil
}

// Code renders the saved gradient with id.
func (s *Service) Code(id string, format render.Format, opts render.Options) (string, error) {
	g, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	return render.Render(g, format, opts)
}

func (s *Service) lookup(id string) (gradient.Gradient, error) {
	if strings.TrimSpace(id) == "" {
		return gradient.Gradient{}, gerrors.NewMissingIdentifier()
	}

	g, ok, err := s.store.Get(id)
	if err != nil {
		return gradient.Gradient{}, err
	}
	if !ok {
		return gradient.Gradient{}, gerrors.NewNotFound(id)
	}
	return g, nil
}
