package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"NoticeScanner/internal/domain"
	"NoticeScanner/internal/ports"
)

// PostgresRepository persists findings into Postgres. The link column is
// the natural key: the store enforces uniqueness and the upsert relies on
// its atomic ON CONFLICT semantics.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.FindingRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ExistingLinks returns a map with the natural keys already in storage.
func (r *PostgresRepository) ExistingLinks(ctx context.Context, links []string) (map[string]bool, error) {
	if r.db == nil || len(links) == 0 {
		return map[string]bool{}, nil
	}

	query := `SELECT link FROM findings WHERE link = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.StringArray(links))
	if err != nil {
		return nil, fmt.Errorf("query existing links: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		result[link] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// Upsert inserts the finding or, when a row with the same link exists,
// refreshes its mutable fields.
func (r *PostgresRepository) Upsert(ctx context.Context, f domain.Finding) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("findings").
		Columns("link", "display_id", "title", "filing_type", "case_number",
			"address", "amount", "filing_date", "priority", "accuracy",
			"opportunity_score", "source", "raw_content").
		Values(f.Link, f.ID, f.Title, string(f.FilingType), f.CaseNumber,
			f.Address, f.Amount, f.FilingDate, string(f.Priority), f.Accuracy,
			f.OpportunityScore, f.Source, f.RawContent).
		Suffix(`ON CONFLICT (link) DO UPDATE
              SET title = EXCLUDED.title,
                  filing_type = EXCLUDED.filing_type,
                  case_number = EXCLUDED.case_number,
                  address = EXCLUDED.address,
                  amount = EXCLUDED.amount,
                  filing_date = EXCLUDED.filing_date,
                  priority = EXCLUDED.priority,
                  accuracy = EXCLUDED.accuracy,
                  opportunity_score = EXCLUDED.opportunity_score,
                  raw_content = EXCLUDED.raw_content,
                  updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert finding: %w", err)
	}

	return nil
}
