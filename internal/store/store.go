// Package store implements the validated record-management engine shared by
// every dashboard screen: an ordered in-memory list, a draft being created or
// edited, and a per-field error map gating every mutation.
package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/validation"
)

// ErrInvalid indicates the draft failed validation; the list was not touched.
var ErrInvalid = errors.New("draft failed validation")

// ErrOutOfRange indicates the index does not address a stored record.
var ErrOutOfRange = errors.New("record index out of range")

// Validator computes the error map for a draft record.
type Validator[T any] func(T) validation.Errors

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithIDAssign registers a callback that stamps a sequence id onto a record
// at the moment it is appended. Types keyed by a natural identifier (e.g.
// payment transaction ids) do not need one.
func WithIDAssign[T any](assign func(record *T, id int)) Option[T] {
	return func(s *Store[T]) { s.assignID = assign }
}

// WithLogger attaches a logger; a nil logger is replaced with a no-op one.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(s *Store[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the authoritative record list for one screen. Insertion order
// is display order: Add appends, SaveEdit replaces in place, Delete removes.
// Every element in the list satisfied its validator at the moment it was
// inserted or last successfully edited; rows are not re-checked afterwards.
//
// All operations run under a mutex so concurrent HTTP requests observe a
// consistent list, but each operation is synchronous and runs to completion.
type Store[T any] struct {
	mu       sync.Mutex
	records  []T
	validate Validator[T]
	assignID func(*T, int)
	nextID   int
	logger   *zap.Logger

	editing   bool
	editIndex int
	draft     T
	errs      validation.Errors
}

// New builds a Store around the given validator set.
func New[T any](validate Validator[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		validate:  validate,
		nextID:    1,
		logger:    zap.NewNop(),
		editIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates draft and, when every field passes, appends it to the end of
// the list, assigning a sequence id if the type uses one. On failure the list
// is untouched and the error map is returned alongside ErrInvalid.
func (s *Store[T]) Add(draft T) (T, validation.Errors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := s.validate(draft)
	if !errs.OK() {
		s.errs = errs
		s.logger.Debug("add rejected", zap.String("reason", errs.First()))
		var zero T
		return zero, errs, ErrInvalid
	}

	if s.assignID != nil {
		s.assignID(&draft, s.nextID)
		s.nextID++
	}
	s.records = append(s.records, draft)
	s.clearEditLocked()
	s.logger.Debug("record added", zap.Int("count", len(s.records)))
	return draft, errs, nil
}

// BeginEdit copies the record at index into the draft and marks it as being
// edited. The list itself is not modified.
func (s *Store[T]) BeginEdit(index int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		var zero T
		return zero, ErrOutOfRange
	}
	s.editing = true
	s.editIndex = index
	s.draft = s.records[index]
	s.errs = validation.Errors{}
	return s.draft, nil
}

// SaveEdit re-validates draft exactly as Add does and, on success, replaces
// the record at index in place, preserving order, and clears edit mode. On
// failure the list is untouched and edit mode stays open with the error map
// populated.
func (s *Store[T]) SaveEdit(index int, draft T) (T, validation.Errors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		var zero T
		return zero, nil, ErrOutOfRange
	}

	errs := s.validate(draft)
	if !errs.OK() {
		s.editing = true
		s.editIndex = index
		s.draft = draft
		s.errs = errs
		var zero T
		return zero, errs, ErrInvalid
	}

	s.records[index] = draft
	s.clearEditLocked()
	return draft, errs, nil
}

// CancelEdit discards the draft and clears edit mode without touching the
// list. Calling it when no edit is in progress is a no-op.
func (s *Store[T]) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearEditLocked()
}

// Delete removes the record at index. If that record was being edited, edit
// mode is cleared too. There is no undo.
func (s *Store[T]) Delete(index int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		var zero T
		return zero, ErrOutOfRange
	}

	removed := s.records[index]
	s.records = append(s.records[:index], s.records[index+1:]...)

	switch {
	case s.editing && s.editIndex == index:
		s.clearEditLocked()
	case s.editing && s.editIndex > index:
		s.editIndex--
	}
	return removed, nil
}

// FindIndex returns the index of the first record matching pred, or -1.
func (s *Store[T]) FindIndex(pred func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if pred(r) {
			return i
		}
	}
	return -1
}

// List returns a copy of the records in display order.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record at index.
func (s *Store[T]) Get(index int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		var zero T
		return zero, ErrOutOfRange
	}
	return s.records[index], nil
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// EditState reports the current draft, the index being edited and the last
// error map. ok is false when no edit is in progress.
func (s *Store[T]) EditState() (draft T, index int, errs validation.Errors, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		var zero T
		return zero, -1, nil, false
	}
	return s.draft, s.editIndex, s.errs, true
}

func (s *Store[T]) clearEditLocked() {
	var zero T
	s.editing = false
	s.editIndex = -1
	s.draft = zero
	s.errs = nil
}
