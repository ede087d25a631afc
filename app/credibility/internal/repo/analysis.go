package repo

import (
	"context"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
)

// AnalysisRepo 分析结果仓库接口，记录只增不改
type AnalysisRepo interface {
	// Create 写入一条记录，分配 ID 与创建时间
	Create(ctx context.Context, draft *domain.AnalysisDraft) (*domain.AnalysisResult, error)
	// Get 根据 ID 获取记录，不存在时返回 NotFound
	Get(ctx context.Context, id int64) (*domain.AnalysisResult, error)
	// List 按创建时间倒序返回全部记录
	List(ctx context.Context) ([]*domain.AnalysisResult, error)
	// Count 记录总数
	Count(ctx context.Context) (int, error)
}
