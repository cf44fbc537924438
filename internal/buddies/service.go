package buddies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/timezone-buddy/internal/types"
	"github.com/aanand-mishra/timezone-buddy/internal/zone"
)

// ErrNotFound is returned for a list position that does not exist.
var ErrNotFound = errors.New("no buddy at that position")

// Input is what a create or edit form submits. The avatar is derived.
type Input struct {
	Name          string `json:"name"`
	TwitterHandle string `json:"twitter_handle"`
	TZ            string `json:"tz"`
}

// ValidationError reports which fields of an Input were rejected.
type ValidationError struct {
	Errs validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, fe := range e.Errs {
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", fe.Field()))
		case "timezone":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid IANA timezone, got %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Errs }

// validate is shared: validator caches struct metadata per instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON key ("tz") rather than the Go name ("TZ").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Same rules the views use to display a zone, so anything accepted
	// here can be shown later.
	if err := v.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
		_, err := zone.Load(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Build turns a form submission into a validated Buddy.
func Build(in Input) (types.Buddy, error) {
	name := strings.TrimSpace(in.Name)
	handle := strings.TrimPrefix(strings.TrimSpace(in.TwitterHandle), "@")
	tz := strings.TrimSpace(in.TZ)

	b := types.Buddy{
		Name:          name,
		TwitterHandle: handle,
		TZ:            tz,
		Avatar:        AvatarURL(name, handle),
	}

	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return types.Buddy{}, &ValidationError{Errs: verrs}
		}
		return types.Buddy{}, fmt.Errorf("Build: validate: %w", err)
	}
	return b, nil
}

// Service performs the list mutations. Each one loads the list, applies
// the change to a copy, and persists the whole list.
type Service struct {
	store *Store

	// mu serializes load-mutate-save cycles (the HTTP server is concurrent).
	mu sync.Mutex
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// List returns every buddy in stored order.
func (s *Service) List(ctx context.Context) ([]types.Buddy, error) {
	return s.store.Load(ctx)
}

// Get returns the buddy at index.
func (s *Service) Get(ctx context.Context, index int) (types.Buddy, error) {
	list, err := s.store.Load(ctx)
	if err != nil {
		return types.Buddy{}, err
	}
	if index < 0 || index >= len(list) {
		return types.Buddy{}, fmt.Errorf("%w: %d", ErrNotFound, index)
	}
	return list[index], nil
}

// Create appends a new buddy and returns it with its position.
func (s *Service) Create(ctx context.Context, in Input) (types.Buddy, int, error) {
	b, err := Build(in)
	if err != nil {
		return types.Buddy{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return types.Buddy{}, 0, err
	}

	next := append(append(make([]types.Buddy, 0, len(list)+1), list...), b)
	if err := s.store.Save(ctx, next); err != nil {
		return types.Buddy{}, 0, err
	}

	slog.Info("buddy created", slog.String("name", b.Name), slog.String("tz", b.TZ))
	return b, len(next) - 1, nil
}

// Update replaces the buddy at index.
func (s *Service) Update(ctx context.Context, index int, in Input) (types.Buddy, error) {
	b, err := Build(in)
	if err != nil {
		return types.Buddy{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return types.Buddy{}, err
	}
	if index < 0 || index >= len(list) {
		return types.Buddy{}, fmt.Errorf("%w: %d", ErrNotFound, index)
	}

	next := append([]types.Buddy(nil), list...)
	next[index] = b
	if err := s.store.Save(ctx, next); err != nil {
		return types.Buddy{}, err
	}

	slog.Info("buddy updated", slog.Int("index", index), slog.String("name", b.Name))
	return b, nil
}

// Delete removes the buddy at index, keeping the others in order, and
// returns the removed record.
func (s *Service) Delete(ctx context.Context, index int) (types.Buddy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return types.Buddy{}, err
	}
	if index < 0 || index >= len(list) {
		return types.Buddy{}, fmt.Errorf("%w: %d", ErrNotFound, index)
	}

	removed := list[index]
	next := make([]types.Buddy, 0, len(list)-1)
	next = append(next, list[:index]...)
	next = append(next, list[index+1:]...)
	if err := s.store.Save(ctx, next); err != nil {
		return types.Buddy{}, err
	}

	slog.Info("buddy deleted", slog.Int("index", index), slog.String("name", removed.Name))
	return removed, nil
}

// Replace validates every input and stores exactly that list, or, with
// appendOnly, appends it to the current one. Nothing is written if any
// input is invalid.
func (s *Service) Replace(ctx context.Context, inputs []Input, appendOnly bool) ([]types.Buddy, error) {
	built := make([]types.Buddy, 0, len(inputs))
	for i, in := range inputs {
		b, err := Build(in)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		built = append(built, b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := built
	if appendOnly {
		list, err := s.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		next = append(list, built...)
	}

	if len(next) == 0 {
		if err := s.store.Clear(ctx); err != nil {
			return nil, err
		}
		slog.Info("buddy list cleared")
		return next, nil
	}

	if err := s.store.Save(ctx, next); err != nil {
		return nil, err
	}

	slog.Info("buddy list replaced", slog.Int("count", len(next)), slog.Bool("append", appendOnly))
	return next, nil
}

// Clear removes every buddy.
func (s *Service) Clear(ctx context.Context) error {
	_, err := s.Replace(ctx, nil, false)
	return err
}
