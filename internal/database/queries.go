package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/campusfind/internal/match"
)

const itemColumns = `id, kind, name, description, location, category, color, brand, contact,
		       status, reported_at, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	i := &Item{}
	var color, brand, contact sql.NullString

	if err := row.Scan(
		&i.ID, &i.Kind, &i.Name, &i.Description, &i.Location, &i.Category,
		&color, &brand, &contact, &i.Status, &i.ReportedAt, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}

	i.Color = StringPtr(color)
	i.Brand = StringPtr(brand)
	i.Contact = StringPtr(contact)
	return i, nil
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	defer rows.Close()

	var items []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *i)
	}

	return items, rows.Err()
}

// execer is satisfied by *DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateItem inserts a new item
func (db *DB) CreateItem(ctx context.Context, i *Item) error {
	_, err := insertItem(ctx, db, i, false)
	return err
}

// insertItem fills defaults and inserts i. With skipExisting a row whose ID
// is already present is left untouched and 0 is returned.
func insertItem(ctx context.Context, ex execer, i *Item, skipExisting bool) (int, error) {
	if !i.Kind.Valid() {
		return 0, fmt.Errorf("invalid item kind: %q", i.Kind)
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Status == "" {
		i.Status = StatusActive
	}
	now := time.Now()
	if i.ReportedAt.IsZero() {
		i.ReportedAt = now
	}
	i.CreatedAt = now
	i.UpdatedAt = now

	verb := "INSERT"
	if skipExisting {
		verb = "INSERT OR IGNORE"
	}

	result, err := ex.ExecContext(ctx, verb+` INTO items (
			id, kind, name, description, location, category, color, brand, contact,
			status, reported_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		i.ID, i.Kind, i.Name, i.Description, i.Location, i.Category,
		NullString(i.Color), NullString(i.Brand), NullString(i.Contact),
		i.Status, i.ReportedAt, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}

	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// GetItem retrieves an item by ID
func (db *DB) GetItem(ctx context.Context, id string) (*Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	i, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

// UpdateItemStatus moves an item to a new lifecycle state
func (db *DB) UpdateItemStatus(ctx context.Context, id string, status ItemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	result, err := db.ExecContext(ctx, `
		UPDATE items SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now(), id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return nil
}

// ListItems retrieves items with optional filters
func (db *DB) ListItems(ctx context.Context, opts ListOptions) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []interface{}{}

	if opts.Kind != nil {
		query += " AND kind = ?"
		args = append(args, *opts.Kind)
	}
	if opts.Status != nil {
		query += " AND status = ?"
		args = append(args, *opts.Status)
	}
	if opts.Location != nil {
		query += " AND location = ?"
		args = append(args, *opts.Location)
	}
	if opts.Category != nil {
		query += " AND category = ?"
		args = append(args, *opts.Category)
	}
	if opts.Since != nil {
		query += " AND reported_at >= ?"
		args = append(args, *opts.Since)
	}

	query += " ORDER BY reported_at DESC, id"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// ListActiveItemsByKind returns every active item of the given kind, newest
// report first. The order is stable for a fixed table state.
func (db *DB) ListActiveItemsByKind(ctx context.Context, kind match.Kind) ([]Item, error) {
	status := StatusActive
	return db.ListItems(ctx, ListOptions{Kind: &kind, Status: &status})
}

// Search searches items by text
func (db *DB) Search(ctx context.Context, query string) ([]Item, error) {
	searchPattern := "%" + strings.ToLower(query) + "%"

	rows, err := db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE LOWER(name) LIKE ?
		   OR LOWER(description) LIKE ?
		   OR LOWER(location) LIKE ?
		   OR LOWER(category) LIKE ?
		   OR LOWER(brand) LIKE ?
		ORDER BY reported_at DESC, id
	`, searchPattern, searchPattern, searchPattern, searchPattern, searchPattern)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// GetStats retrieves aggregate statistics
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN kind = 'lost' AND status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'found' AND status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'claimed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END), 0)
		FROM items
	`).Scan(&stats.TotalItems, &stats.ActiveLost, &stats.ActiveFound, &stats.Claimed, &stats.Closed)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
