package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/repo"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

const analysisColumns = `id, url, title, content_snippet, credibility_score, breakdown, created_at`

type analysisRepo struct {
	data *Data
	log  *log.Helper
}

// NewAnalysisRepo 创建分析结果仓库
func NewAnalysisRepo(data *Data, logger log.Logger) repo.AnalysisRepo {
	return &analysisRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *analysisRepo) Create(ctx context.Context, draft *domain.AnalysisDraft) (*domain.AnalysisResult, error) {
	normalizeBreakdown(&draft.Breakdown)
	breakdown, err := json.Marshal(draft.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown: %w", err)
	}
	createdAt := r.data.now().UTC().Truncate(time.Microsecond)

	var id int64
	err = r.data.db.QueryRowContext(ctx, r.data.rebind(`
		INSERT INTO analysis_results (url, title, content_snippet, credibility_score, breakdown, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`), nullString(draft.URL), nullString(draft.Title), draft.ContentSnippet, draft.CredibilityScore,
		string(breakdown), createdAt).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}
	r.log.WithContext(ctx).Debugf("stored analysis id=%d", id)

	return &domain.AnalysisResult{
		ID:               id,
		URL:              draft.URL,
		Title:            draft.Title,
		ContentSnippet:   draft.ContentSnippet,
		CredibilityScore: draft.CredibilityScore,
		Breakdown:        draft.Breakdown,
		CreatedAt:        createdAt,
	}, nil
}

func (r *analysisRepo) Get(ctx context.Context, id int64) (*domain.AnalysisResult, error) {
	row := r.data.db.QueryRowContext(ctx, r.data.rebind(`
		SELECT `+analysisColumns+` FROM analysis_results WHERE id = ?
	`), id)
	res, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("ANALYSIS_NOT_FOUND", domain.MsgNotFound)
		}
		return nil, err
	}
	return res, nil
}

func (r *analysisRepo) List(ctx context.Context) ([]*domain.AnalysisResult, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT `+analysisColumns+` FROM analysis_results ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	list := make([]*domain.AnalysisResult, 0)
	for rows.Next() {
		res, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return list, nil
}

func (r *analysisRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.data.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.AnalysisResult, error) {
	var (
		res       domain.AnalysisResult
		url       sql.NullString
		title     sql.NullString
		snippet   sql.NullString
		breakdown string
	)
	if err := row.Scan(&res.ID, &url, &title, &snippet, &res.CredibilityScore, &breakdown, &res.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(breakdown), &res.Breakdown); err != nil {
		return nil, fmt.Errorf("decode breakdown of analysis %d: %w", res.ID, err)
	}
	normalizeBreakdown(&res.Breakdown)
	if url.Valid {
		res.URL = &url.String
	}
	if title.Valid {
		res.Title = &title.String
	}
	res.ContentSnippet = snippet.String
	res.CreatedAt = res.CreatedAt.UTC()
	return &res, nil
}

// normalizeBreakdown 保证列表字段序列化为 [] 而不是 null
func normalizeBreakdown(b *model.Breakdown) {
	if b.RedFlags == nil {
		b.RedFlags = []string{}
	}
	if b.PositiveSignals == nil {
		b.PositiveSignals = []string{}
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
