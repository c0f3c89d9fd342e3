package duckdb

import (
	"fmt"
	"regexp"
	"strings"
)

// maxQueryRows caps ExecuteQuery results.
const maxQueryRows = 1000

// dangerousKeywordPattern matches mutating or host-touching keywords at word
// boundaries so that "RESET" does not match "SET".
var dangerousKeywordPattern = regexp.MustCompile(
	`(?i)\b(INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|TRUNCATE|COPY|ATTACH|LOAD|EXPORT|IMPORT|INSTALL|CALL|EXECUTE|PRAGMA|SET)\b`,
)

var blockCommentPattern = regexp.MustCompile(`/\*[\s\S]*?\*/`)

func stripSQLComments(query string) string {
	cleaned := blockCommentPattern.ReplaceAllString(query, " ")
	var result strings.Builder
	for _, line := range strings.Split(cleaned, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		result.WriteString(line)
		result.WriteByte('\n')
	}
	return result.String()
}

// checkReadOnly rejects anything but a single SELECT/WITH statement.
func checkReadOnly(query string) error {
	if strings.Contains(query, ";") {
		return fmt.Errorf("query must not contain semicolons")
	}
	stripped := strings.TrimSpace(stripSQLComments(query))
	upper := strings.ToUpper(stripped)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("only SELECT/WITH queries are allowed")
	}
	if match := dangerousKeywordPattern.FindString(stripped); match != "" {
		return fmt.Errorf("query contains disallowed keyword: %s", strings.ToUpper(match))
	}
	return nil
}

// ExecuteQuery runs an ad-hoc read-only query against the catalog tables and
// returns at most 1000 rows as column maps.
func (s *Store) ExecuteQuery(query string) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(query)
	if err := checkReadOnly(trimmed); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := []map[string]any{}
	for rows.Next() && len(results) < maxQueryRows {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			s.log.Warn().Err(err).Str("op", "ExecuteQuery").Msg("duckdb scan error")
			continue
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSchemaDescription returns a human-readable summary of the queryable tables.
func (s *Store) GetSchemaDescription() string {
	return `Table 'products': id (INTEGER), position (INTEGER), name (VARCHAR), category (VARCHAR), ` +
		`price (DOUBLE), original_price (DOUBLE, NULL when not discounted), image (VARCHAR), ` +
		`featured (BOOLEAN), description (VARCHAR), rating (DOUBLE), review_count (INTEGER). ` +
		`Table 'categories': name (VARCHAR), position (INTEGER). ` +
		`View 'product_discounts': id (INTEGER), discount (DOUBLE, fraction of original price).`
}
