package service

import (
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/usecase"
)

const (
	OperationAnalyze     = "/credibility.v1.Analysis/Analyze"
	OperationListHistory = "/credibility.v1.Analysis/ListHistory"
	OperationGetHistory  = "/credibility.v1.Analysis/GetHistory"
)

type AnalysisService struct {
	uc  *usecase.AnalysisUseCase
	log *log.Helper
}

func NewAnalysisService(uc *usecase.AnalysisUseCase, logger log.Logger) *AnalysisService {
	return &AnalysisService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// RegisterRoutes 注册 HTTP 路由
func (s *AnalysisService) RegisterRoutes(srv *http.Server) {
	r := srv.Route("/")
	r.POST("/api/analyze", s.Analyze)
	r.GET("/api/history", s.ListHistory)
	r.GET("/api/history/{id}", s.GetHistory)
	r.GET("/healthz", s.Health)
}

func (s *AnalysisService) Analyze(ctx http.Context) error {
	var req domain.AnalyzeRequest
	if err := ctx.Bind(&req); err != nil {
		s.log.WithContext(ctx).Debugf("bind analyze request: %v", err)
		return errors.BadRequest(domain.ReasonInvalidRequest, domain.MsgInvalidBody)
	}

	http.SetOperation(ctx, OperationAnalyze)
	h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
		return s.uc.Analyze(c, in.(*domain.AnalyzeRequest))
	})
	out, err := h(ctx, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

func (s *AnalysisService) ListHistory(ctx http.Context) error {
	http.SetOperation(ctx, OperationListHistory)
	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return s.uc.List(c)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

func (s *AnalysisService) GetHistory(ctx http.Context) error {
	// 非整数 ID 与不存在的记录一样按 404 处理
	id, err := strconv.ParseInt(ctx.Vars().Get("id"), 10, 64)
	if err != nil {
		return errors.NotFound("ANALYSIS_NOT_FOUND", domain.MsgNotFound)
	}

	http.SetOperation(ctx, OperationGetHistory)
	h := ctx.Middleware(func(c context.Context, in interface{}) (interface{}, error) {
		return s.uc.Get(c, in.(int64))
	})
	out, err := h(ctx, id)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, out)
}

func (s *AnalysisService) Health(ctx http.Context) error {
	return ctx.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
}
