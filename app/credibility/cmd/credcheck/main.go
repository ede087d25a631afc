package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/joho/godotenv"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/data"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/usecase"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/config"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/engine"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/logger"
)

var (
	flagconf string
	flagURL  string
	flagText string
	flagFile string
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/credibility/configs/credcheck.yaml", "config path, eg: -conf credcheck.yaml")
	flag.StringVar(&flagURL, "url", "", "article url to analyze")
	flag.StringVar(&flagText, "text", "", "article text to analyze")
	flag.StringVar(&flagFile, "file", "", "read article text from file")
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}

	req, err := buildRequest(flagURL, flagText, flagFile)
	if err != nil {
		logger.Log.Fatalf("读取输入失败: %v", err)
	}

	// 3. 初始化引擎
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 4. 评估并输出
	result, err := analyze(ctx, cfg, eng, req)
	if err != nil {
		logger.Log.Fatalf("分析失败: %s", errors.FromError(err).Message)
	}
	if err := printResult(os.Stdout, result); err != nil {
		logger.Log.Fatalf("输出结果失败: %v", err)
	}
}

// buildRequest 组装请求，-file 优先于 -text
func buildRequest(url, text, file string) (*domain.AnalyzeRequest, error) {
	req := &domain.AnalyzeRequest{}
	if url != "" {
		req.URL = &url
	}
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		text = string(b)
	}
	if text != "" {
		req.Text = &text
	}
	return req, nil
}

// analyze 配置了数据库时走完整用例并落库，否则只评估
func analyze(ctx context.Context, cfg *config.Config, eval usecase.Evaluator, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	kl := logger.NewKratosLogger(logger.Log)

	if cfg.DB.Enabled() {
		d, err := data.Open(cfg.DB.Driver, cfg.DB.DSN())
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 结果将不会保存。", err)
		} else {
			defer d.Close()
			uc := usecase.NewAnalysisUseCase(eval, data.NewAnalysisRepo(d, kl), kl)
			return uc.Analyze(ctx, req)
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	e, err := eval.Evaluate(ctx, req.Input())
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	draft := domain.NewDraft(e)
	return &domain.AnalysisResult{
		URL:              draft.URL,
		Title:            draft.Title,
		ContentSnippet:   draft.ContentSnippet,
		CredibilityScore: draft.CredibilityScore,
		Breakdown:        draft.Breakdown,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

func printResult(w io.Writer, result *domain.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
