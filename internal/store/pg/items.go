package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nextlevelbuilder/jotbot/internal/store"
)

// ItemStore implements store.Store backed by Postgres.
type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) Insert(ctx context.Context, kind store.Kind, ownerID int64, text string) (store.Item, error) {
	if !kind.Valid() {
		return store.Item{}, fmt.Errorf("insert item: invalid kind %q", kind)
	}

	item := store.Item{
		ID:        store.GenNewID(),
		Kind:      kind,
		OwnerID:   ownerID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, kind, owner_id, text, done, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Kind, item.OwnerID, item.Text, item.Done, item.CreatedAt)
	if err != nil {
		return store.Item{}, fmt.Errorf("insert %s: %w", kind, err)
	}
	return item, nil
}

func (s *ItemStore) List(ctx context.Context, ownerID int64) ([]store.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, owner_id, text, done, created_at
		 FROM items WHERE owner_id = $1
		 ORDER BY created_at, id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *ItemStore) ListKind(ctx context.Context, kind store.Kind, ownerID int64) ([]store.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, owner_id, text, done, created_at
		 FROM items WHERE owner_id = $1 AND kind = $2
		 ORDER BY created_at, id`,
		ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", kind, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *ItemStore) DeleteAll(ctx context.Context, kind store.Kind, ownerID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM items WHERE owner_id = $1 AND kind = $2",
		ownerID, kind)
	if err != nil {
		return 0, fmt.Errorf("delete %ss: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete %ss: rows affected: %w", kind, err)
	}
	return n, nil
}

func (s *ItemStore) SetDone(ctx context.Context, id uuid.UUID, done bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET done = $1 WHERE id = $2 AND kind = 'task'",
		done, id)
	if err != nil {
		return fmt.Errorf("set done: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("set done: no task with id %s", id)
	}
	return nil
}

func (s *ItemStore) Counts(ctx context.Context, ownerID int64) (store.Counts, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, COUNT(*) FROM items WHERE owner_id = $1 GROUP BY kind",
		ownerID)
	if err != nil {
		return store.Counts{}, fmt.Errorf("count items: %w", err)
	}
	defer rows.Close()

	var counts store.Counts
	for rows.Next() {
		var kind store.Kind
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return store.Counts{}, fmt.Errorf("count items: scan: %w", err)
		}
		switch kind {
		case store.KindNote:
			counts.Notes = n
		case store.KindTask:
			counts.Tasks = n
		}
	}
	return counts, rows.Err()
}

func scanItems(rows *sql.Rows) ([]store.Item, error) {
	var items []store.Item
	for rows.Next() {
		var it store.Item
		if err := rows.Scan(&it.ID, &it.Kind, &it.OwnerID, &it.Text, &it.Done, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
