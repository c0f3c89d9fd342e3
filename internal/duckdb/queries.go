package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/model"
)

var _ model.CatalogQuerier = (*Store)(nil)

const productColumns = `id, name, category, price, original_price, image, featured, description, rating, review_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (model.Product, error) {
	var p model.Product
	var original sql.NullFloat64
	if err := r.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &original, &p.Image,
		&p.Featured, &p.Description, &p.Rating, &p.ReviewCount); err != nil {
		return model.Product{}, err
	}
	if original.Valid {
		p.OriginalPrice = original.Float64
	}
	return p, nil
}

// listProducts runs a product query and scans every row.
func (s *Store) listProducts(op, query string, args ...any) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			s.log.Warn().Err(err).Str("op", op).Msg("duckdb scan error")
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func limitClause(limit int) (string, []any) {
	if limit > 0 {
		return " LIMIT ?", []any{limit}
	}
	return "", nil
}

// AllProducts returns the whole catalog in seed order.
func (s *Store) AllProducts() ([]model.Product, error) {
	return s.listProducts("AllProducts", `SELECT `+productColumns+` FROM products ORDER BY position`)
}

// Products filters by category and case-insensitive name substring.
func (s *Store) Products(q model.ProductQuery) ([]model.Product, error) {
	var conditions []string
	var args []any

	if q.Category != "" && q.Category != model.CategoryAll {
		conditions = append(conditions, "category = ?")
		args = append(args, q.Category)
	}
	if q.Search != "" {
		conditions = append(conditions, "contains(lower(name), ?)")
		args = append(args, strings.ToLower(q.Search))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY position"
	return s.listProducts("Products", query, args...)
}

// Product returns one product or catalog.ErrNotFound.
func (s *Store) Product(id int) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("Product(%d): %w", id, err)
	}
	return p, nil
}

// Categories returns category names, "All" first.
func (s *Store) Categories() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("Categories: %w", err)
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			s.log.Warn().Err(err).Str("op", "Categories").Msg("duckdb scan error")
			continue
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Featured returns flagged products in seed order.
func (s *Store) Featured() ([]model.Product, error) {
	return s.listProducts("Featured", `SELECT `+productColumns+` FROM products WHERE featured ORDER BY position`)
}

// Trending returns the top rated products.
func (s *Store) Trending(limit int) ([]model.Product, error) {
	lim, args := limitClause(limit)
	return s.listProducts("Trending",
		`SELECT `+productColumns+` FROM products ORDER BY rating DESC, position`+lim, args...)
}

// Discounted returns marked-down products, biggest discount ratio first.
func (s *Store) Discounted(limit int) ([]model.Product, error) {
	lim, args := limitClause(limit)
	return s.listProducts("Discounted",
		`SELECT `+productColumns+` FROM products JOIN product_discounts USING (id)
		 ORDER BY discount DESC, position`+lim, args...)
}

// TableRowCounts returns the row count for each known table using a hardcoded allowlist.
func (s *Store) TableRowCounts() (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	allowedTables := []string{"products", "categories"}
	counts := make(map[string]int64, len(allowedTables))

	for _, table := range allowedTables {
		var count int64
		// Table names are hardcoded constants, not user input.
		if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
