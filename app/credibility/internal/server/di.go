package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/data"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/service"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/usecase"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/engine"
)

// ProviderSet 是可信度服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewCredibilityEngine,

	// Data providers
	data.NewData,
	data.NewAnalysisRepo,

	// UseCase providers
	usecase.NewAnalysisUseCase,
	wire.Bind(new(usecase.Evaluator), new(*engine.Engine)),

	// Service providers
	service.NewAnalysisService,
)
