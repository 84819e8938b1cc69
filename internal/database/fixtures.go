package database

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vijay-prabhu/campusfind/internal/match"
)

//go:embed sample.yaml
var sampleItems []byte

// fixtureFile is the YAML layout accepted by LoadFixtures
type fixtureFile struct {
	Items []fixtureItem `yaml:"items"`
}

type fixtureItem struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
	Category    string `yaml:"category"`
	Color       string `yaml:"color"`
	Brand       string `yaml:"brand"`
	Contact     string `yaml:"contact"`
	Status      string `yaml:"status"`
	Date        string `yaml:"date"` // YYYY-MM-DD
}

// LoadFixtures decodes items from YAML
func LoadFixtures(r io.Reader) ([]Item, error) {
	var f fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	items := make([]Item, 0, len(f.Items))
	for n, fi := range f.Items {
		item := Item{
			ID:          fi.ID,
			Kind:        match.Kind(fi.Kind),
			Name:        fi.Name,
			Description: fi.Description,
			Location:    fi.Location,
			Category:    fi.Category,
			Color:       OptionalString(fi.Color),
			Brand:       OptionalString(fi.Brand),
			Contact:     OptionalString(fi.Contact),
			Status:      ItemStatus(fi.Status),
		}

		if !item.Kind.Valid() {
			return nil, fmt.Errorf("item %d (%s): invalid kind %q", n+1, fi.Name, fi.Kind)
		}
		if item.Status != "" && !item.Status.Valid() {
			return nil, fmt.Errorf("item %d (%s): invalid status %q", n+1, fi.Name, fi.Status)
		}
		if fi.Date != "" {
			date, err := time.Parse(time.DateOnly, fi.Date)
			if err != nil {
				return nil, fmt.Errorf("item %d (%s): invalid date: %w", n+1, fi.Name, err)
			}
			item.ReportedAt = date
		}

		items = append(items, item)
	}

	return items, nil
}

// SampleItems returns the bundled demo corpus
func SampleItems() ([]Item, error) {
	return LoadFixtures(bytes.NewReader(sampleItems))
}

// ImportItems inserts items in a single transaction, skipping IDs that
// already exist. It returns the number of items inserted.
func (db *DB) ImportItems(ctx context.Context, items []Item) (int, error) {
	inserted := 0

	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		for idx := range items {
			n, err := insertItem(ctx, tx, &items[idx], true)
			if err != nil {
				return fmt.Errorf("failed to import %q: %w", items[idx].Name, err)
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
