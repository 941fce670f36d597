package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/soilscope/soilscope/pkg/models"
)

// PostgresStore implements Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// validTransitions encodes the report lifecycle. Terminal statuses have
// no outgoing edges; FAILED is reachable from both non-terminal states so
// pipeline errors before the ANALYZING update can still be recorded.
var validTransitions = map[string][]string{
	models.ReportStatusPending:   {models.ReportStatusAnalyzing, models.ReportStatusFailed},
	models.ReportStatusAnalyzing: {models.ReportStatusCompleted, models.ReportStatusFailed},
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *PostgresStore) CreateReport(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, user_id, district, state, area, season, report_file, extracted_text, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		report.ID, report.UserID, report.District, report.State, report.Area,
		report.Season, report.ReportFile, report.ExtractedText, report.Status,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: report %s", ErrDuplicateKey, report.ID)
		}
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

const reportColumns = `id, user_id, district, state, area, season, report_file,
	extracted_text, status, analysis, analyzed_at, created_at, updated_at`

func (s *PostgresStore) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	report, err := scanReport(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: report %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return report, nil
}

func (s *PostgresStore) ListReports(ctx context.Context, filter ReportFilter) ([]*models.Report, int, error) {
	conditions := []string{}
	args := []any{}
	argIdx := 1

	if filter.UserID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, filter.Since)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM reports"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf(
		"SELECT "+reportColumns+" FROM reports%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, total, nil
}

func (s *PostgresStore) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string, opts ...ReportUpdateOption) error {
	params := &ReportUpdate{}
	for _, opt := range opts {
		opt(params)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM reports WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: report %s", ErrNotFound, id)
		}
		return fmt.Errorf("lock report: %w", err)
	}

	if !transitionAllowed(current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	setClauses := []string{"status = $2", "updated_at = NOW()"}
	args := []any{id, status}
	argIdx := 3

	if params.Analysis != nil {
		payload, err := json.Marshal(params.Analysis)
		if err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("analysis = $%d", argIdx))
		args = append(args, payload)
		argIdx++
	}
	if params.AnalyzedAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("analyzed_at = $%d", argIdx))
		args = append(args, *params.AnalyzedAt)
		argIdx++
	}

	query := fmt.Sprintf("UPDATE reports SET %s WHERE id = $1", strings.Join(setClauses, ", "))
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update report status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	query := `
		INSERT INTO api_keys (id, user_id, name, key_hash, key_prefix, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		key.ID, key.UserID, key.Name, key.KeyHash, key.KeyPrefix, key.Role,
	).Scan(&key.CreatedAt, &key.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: api key %s", ErrDuplicateKey, key.ID)
		}
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	query := `
		SELECT id, user_id, name, key_hash, key_prefix, role, last_used_at, created_at, updated_at
		FROM api_keys
		WHERE key_prefix = $1 AND deleted_at IS NULL`

	rows, err := s.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("query api keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		key := &models.APIKey{}
		err := rows.Scan(&key.ID, &key.UserID, &key.Name, &key.KeyHash, &key.KeyPrefix,
			&key.Role, &key.LastUsedAt, &key.CreatedAt, &key.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}
	return keys, nil
}

func (s *PostgresStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE api_keys SET last_used_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update api key last used: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*models.Report, error) {
	report := &models.Report{}
	var analysisJSON []byte

	err := row.Scan(
		&report.ID, &report.UserID, &report.District, &report.State, &report.Area,
		&report.Season, &report.ReportFile, &report.ExtractedText, &report.Status,
		&analysisJSON, &report.AnalyzedAt, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(analysisJSON) > 0 {
		analysis := &models.AIAnalysis{}
		if err := json.Unmarshal(analysisJSON, analysis); err != nil {
			return nil, fmt.Errorf("decode analysis payload: %w", err)
		}
		report.Analysis = analysis
	}
	return report, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
