package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/model"
)

// Seed replaces the catalog contents with seed inside one transaction.
// Catalog order is kept in the position column.
func (s *Store) Seed(seed catalog.Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	if err := seedTx(ctx, tx, seed); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	s.log.Info().
		Int("products", len(seed.Products)).
		Int("categories", len(seed.Categories)).
		Msg("Catalog seeded")
	return nil
}

func seedTx(ctx context.Context, tx *sql.Tx, seed catalog.Seed) error {
	for _, table := range []string{"products", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	cats := []string{model.CategoryAll}
	for _, c := range seed.Categories {
		if c != model.CategoryAll {
			cats = append(cats, c)
		}
	}
	for i, c := range cats {
		if _, err := tx.ExecContext(ctx, "INSERT INTO categories (name, position) VALUES (?, ?)", c, i); err != nil {
			return fmt.Errorf("inserting category %q: %w", c, err)
		}
	}

	for i, p := range seed.Products {
		var original sql.NullFloat64
		if p.OriginalPrice > 0 {
			original = sql.NullFloat64{Float64: p.OriginalPrice, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO products
			(id, position, name, category, price, original_price, image, featured, description, rating, review_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, i, p.Name, p.Category, p.Price, original, p.Image, p.Featured, p.Description, p.Rating, p.ReviewCount)
		if err != nil {
			return fmt.Errorf("inserting product %d: %w", p.ID, err)
		}
	}
	return nil
}
