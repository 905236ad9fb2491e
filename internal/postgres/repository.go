package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blackmichael/aws-newsroom/internal/domain"
	_ "github.com/lib/pq"
)

// Repository implements domain.ArticleRepository, domain.LinkRepository and
// domain.SummaryRepository using PostgreSQL.
type Repository struct {
	db *sql.DB
}

// NewRepository connects to PostgreSQL at the given URL, verifies the
// connection, and returns a new Repository. The caller should call Close
// when the repository is no longer needed.
func NewRepository(databaseURL string) (*Repository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// CreateArticle inserts the article if no row with its id exists. The
// conditional insert makes concurrent overlapping ingestion runs safe: the
// loser of a race sees "already present", not an error.
func (r *Repository) CreateArticle(ctx context.Context, article *domain.Article) (bool, error) {
	query := `
		INSERT INTO news_articles (
			article_id, source_id, source, title, url, description,
			raw_html, author, blog_category, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (article_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		article.ID,
		nullIfEmpty(article.SourceID),
		article.Source,
		article.Title,
		article.URL,
		nullIfEmpty(article.Description),
		nullIfEmpty(article.RawHTML),
		nullIfEmpty(article.Author),
		nullIfEmpty(article.Category),
		article.PublishedAt,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// CreateLink inserts the cross-reference link if no row with its id exists.
func (r *Repository) CreateLink(ctx context.Context, link *domain.ArticleLink) (bool, error) {
	query := `
		INSERT INTO article_links (link_id, article_id, url, title, domain)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (link_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		link.ID,
		link.ArticleID,
		link.URL,
		link.Title,
		link.Domain,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListNeedingSummary returns up to limit articles from the given source that
// have a substantive description and no AI summary yet, newest first.
func (r *Repository) ListNeedingSummary(ctx context.Context, source string, limit int) ([]domain.SummaryCandidate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT article_id, title, description
		FROM news_articles
		WHERE ai_summary IS NULL
		  AND description IS NOT NULL
		  AND LENGTH(description) > 100
		  AND source = $1
		ORDER BY published_at DESC
		LIMIT $2`,
		source, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query summary candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.SummaryCandidate
	for rows.Next() {
		var c domain.SummaryCandidate
		if err := rows.Scan(&c.ArticleID, &c.Title, &c.Description); err != nil {
			return nil, fmt.Errorf("scan summary candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary candidates: %w", err)
	}
	return candidates, nil
}

// SetSummary stores the generated summary and stamps the generation time.
func (r *Repository) SetSummary(ctx context.Context, articleID, summary string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE news_articles
		SET ai_summary = $1, summary_generated_at = $2
		WHERE article_id = $3`,
		summary, time.Now().UTC(), articleID,
	)
	return err
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
