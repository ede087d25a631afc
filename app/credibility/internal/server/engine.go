package server

import (
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/conf"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/config"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/engine"
)

// PipelineConfig 将 internal/conf.Pipeline 转换为 pkg/config.Config
func PipelineConfig(c *conf.Pipeline) (*config.Config, error) {
	if c == nil || c.Llm == nil {
		return nil, fmt.Errorf("pipeline.llm is not configured")
	}

	cfg := &config.Config{
		LLM: config.LLMConfig{
			BaseURL: c.Llm.BaseUrl,
			APIKey:  c.Llm.ApiKey,
			Model:   c.Llm.Model,
		},
	}
	if c.Extractor != nil {
		cfg.Extractor.UserAgent = c.Extractor.UserAgent
		cfg.Extractor.ReadabilityFallback = c.Extractor.ReadabilityFallback
		if c.Extractor.Timeout != "" {
			d, err := time.ParseDuration(c.Extractor.Timeout)
			if err != nil {
				return nil, fmt.Errorf("pipeline.extractor.timeout: %w", err)
			}
			cfg.Extractor.Timeout = d
		}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewCredibilityEngine 初始化评估引擎
func NewCredibilityEngine(c *conf.Pipeline, logger log.Logger) (*engine.Engine, error) {
	helper := log.NewHelper(logger)

	cfg, err := PipelineConfig(c)
	if err != nil {
		helper.Errorf("invalid pipeline config: %v", err)
		return nil, err
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		helper.Errorf("failed to init engine: %v", err)
		return nil, err
	}
	helper.Infof("credibility engine ready, model=%s rpm=%d", cfg.LLM.Model, cfg.Concurrency.RPM)
	return eng, nil
}
