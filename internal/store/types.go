package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two record types the bot manages.
type Kind string

const (
	KindNote Kind = "note"
	KindTask Kind = "task"
)

// Valid reports whether k is a known item kind.
func (k Kind) Valid() bool {
	return k == KindNote || k == KindTask
}

// ParseKind converts a user-supplied string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown item kind %q (want %q or %q)", s, KindNote, KindTask)
	}
	return k, nil
}

// Item is a single note or task owned by one chat user.
// Done is only meaningful for tasks; notes keep it false.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	OwnerID   int64     `json:"owner_id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// Counts holds per-kind item totals for one owner.
type Counts struct {
	Notes int
	Tasks int
}

// GenNewID generates a new UUID v7 (time-ordered).
func GenNewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// Store is the persistence contract for items. Every operation is scoped
// to a single owner; there is no cross-owner visibility.
type Store interface {
	// Insert saves a new item and returns it with ID and CreatedAt set.
	Insert(ctx context.Context, kind Kind, ownerID int64, text string) (Item, error)

	// List returns all of the owner's items, both kinds, in insertion order.
	List(ctx context.Context, ownerID int64) ([]Item, error)

	// ListKind returns the owner's items of one kind in insertion order.
	ListKind(ctx context.Context, kind Kind, ownerID int64) ([]Item, error)

	// DeleteAll removes every item of the given kind for the owner and
	// returns how many were removed.
	DeleteAll(ctx context.Context, kind Kind, ownerID int64) (int64, error)

	// SetDone flips the done flag on a single item.
	SetDone(ctx context.Context, id uuid.UUID, done bool) error

	// Counts returns per-kind totals for the owner.
	Counts(ctx context.Context, ownerID int64) (Counts, error)
}
