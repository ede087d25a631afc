package usecase

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/repo"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/engine"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

const (
	ReasonScrapeFailed    = "SCRAPE_FAILED"
	ReasonContentTooShort = "CONTENT_TOO_SHORT"
	ReasonAnalyzeFailed   = "ANALYZE_FAILED"
	ReasonListFailed      = "LIST_FAILED"
	ReasonGetFailed       = "GET_FAILED"
)

// Evaluator 评估流水线
type Evaluator interface {
	Evaluate(ctx context.Context, in model.Input) (*model.Evaluation, error)
}

// AnalysisUseCase 分析业务逻辑
type AnalysisUseCase struct {
	eval Evaluator
	repo repo.AnalysisRepo
	log  *log.Helper
}

// NewAnalysisUseCase 创建分析用例
func NewAnalysisUseCase(eval Evaluator, repo repo.AnalysisRepo, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{eval: eval, repo: repo, log: log.NewHelper(logger)}
}

// Analyze 校验 → 抽取/打分 → 持久化。任一步失败都不会写库
func (uc *AnalysisUseCase) Analyze(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	in := req.Input()
	eval, err := uc.eval.Evaluate(ctx, in)
	if err != nil {
		switch {
		case stderrors.Is(err, engine.ErrExtraction):
			uc.log.WithContext(ctx).Warnf("extract %s failed: %v", in.URL, err)
			return nil, errors.BadRequest(ReasonScrapeFailed, domain.MsgScrapeFailed)
		case stderrors.Is(err, engine.ErrContentTooShort):
			return nil, errors.BadRequest(ReasonContentTooShort, domain.MsgContentShort)
		default:
			uc.log.WithContext(ctx).Errorf("analyze failed: %v", err)
			return nil, errors.InternalServer(ReasonAnalyzeFailed, domain.MsgAnalyzeFailed)
		}
	}

	result, err := uc.repo.Create(ctx, domain.NewDraft(eval))
	if err != nil {
		uc.log.WithContext(ctx).Errorf("store analysis failed: %v", err)
		return nil, errors.InternalServer(ReasonAnalyzeFailed, domain.MsgAnalyzeFailed)
	}
	uc.log.WithContext(ctx).Infof("analysis %d stored, score=%d", result.ID, result.CredibilityScore)
	return result, nil
}

// List 全部历史记录，最新在前
func (uc *AnalysisUseCase) List(ctx context.Context) ([]*domain.AnalysisResult, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("list analyses failed: %v", err)
		return nil, errors.InternalServer(ReasonListFailed, domain.MsgListFailed)
	}
	return list, nil
}

// Get 单条记录
func (uc *AnalysisUseCase) Get(ctx context.Context, id int64) (*domain.AnalysisResult, error) {
	res, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		uc.log.WithContext(ctx).Errorf("get analysis %d failed: %v", id, err)
		return nil, errors.InternalServer(ReasonGetFailed, domain.MsgGetFailed)
	}
	return res, nil
}
