package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tag is a name/value label attached to a ledger record.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is an append-only ledger entry.
type Record struct {
	TxID      string    `json:"txId"`
	Data      []byte    `json:"-"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tag returns the value of the first tag called name.
func (r Record) Tag(name string) string {
	for _, t := range r.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// ErrNoRecord is returned when a transaction id is unknown.
var ErrNoRecord = fmt.Errorf("%w: ledger record", errNotFound)

// Upload appends data with its tags to the ledger and returns a new
// transaction id. Records are never updated or deleted.
func (s *Store) Upload(ctx context.Context, data []byte, tags []Tag) (string, error) {
	txID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin upload: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO ledger (tx_id, data, created_at) VALUES (?, ?, ?)",
		txID, data, s.now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return "", fmt.Errorf("storage: cannot insert ledger record: %w", err)
	}

	for _, t := range tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ledger_tags (tx_id, name, value) VALUES (?, ?, ?)",
			txID, t.Name, t.Value,
		); err != nil {
			return "", fmt.Errorf("storage: cannot insert tag %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit upload: %w", err)
	}
	return txID, nil
}

// Record loads a ledger entry by transaction id.
func (s *Store) Record(ctx context.Context, txID string) (Record, error) {
	r := Record{TxID: txID}
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT data, created_at FROM ledger WHERE tx_id = ?", txID,
	).Scan(&r.Data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNoRecord
	}
	if err != nil {
		return Record{}, fmt.Errorf("storage: cannot query ledger: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)

	tags, err := s.tagsFor(ctx, []string{txID})
	if err != nil {
		return Record{}, err
	}
	r.Tags = tags[txID]
	return r, nil
}

// RecordsByTag returns the newest records carrying the tag name=value.
func (s *Store) RecordsByTag(ctx context.Context, name, value string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT l.tx_id, l.data, l.created_at
		 FROM ledger l
		 JOIN ledger_tags t ON t.tx_id = l.tx_id
		 WHERE t.name = ? AND t.value = ?
		 ORDER BY l.seq DESC
		 LIMIT ?`,
		name, value, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ledger: %w", err)
	}
	defer rows.Close()

	var records []Record
	var ids []string
	for rows.Next() {
		var r Record
		var createdAt any
		if err := rows.Scan(&r.TxID, &r.Data, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
		ids = append(ids, r.TxID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	tags, err := s.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Tags = tags[records[i].TxID]
	}
	return records, nil
}

// tagsFor loads tags for the given transactions, in insertion order.
func (s *Store) tagsFor(ctx context.Context, ids []string) (map[string][]Tag, error) {
	out := make(map[string][]Tag, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := "SELECT tx_id, name, value FROM ledger_tags WHERE tx_id IN (?" +
		strings.Repeat(", ?", len(ids)-1) + ") ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var t Tag
		if err := rows.Scan(&id, &t.Name, &t.Value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tag: %w", err)
		}
		out[id] = append(out[id], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
