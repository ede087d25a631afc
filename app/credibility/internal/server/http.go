package server

import (
	"encoding/json"
	stderrors "errors"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/conf"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/service"
)

const (
	// DefaultTimeout LLM 调用没有单独超时，整个请求由它兜底
	DefaultTimeout = 120 * time.Second

	HeaderRequestID = "X-Request-ID"
)

func NewHTTPServer(c *conf.Server, s *service.AnalysisService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.Filter(
			RequestIDFilter,
			CORSFilter,
			LoggingFilter(logger),
		),
		http.ErrorEncoder(ErrorEncoder),
		http.Timeout(DefaultTimeout),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	s.RegisterRoutes(srv)
	return srv
}

// ErrorEncoder 错误统一输出为 {"message": "..."}，非业务错误不暴露细节
func ErrorEncoder(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	code := nethttp.StatusInternalServerError
	msg := domain.MsgInternalServer

	var se *errors.Error
	if stderrors.As(err, &se) {
		code = int(se.Code)
		msg = se.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// RequestIDFilter 为每个请求分配 X-Request-ID，已有则沿用
func RequestIDFilter(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(HeaderRequestID, id)
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// CORSFilter 供浏览器端页面跨域调用，预检请求直接返回
func CORSFilter(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+HeaderRequestID)
		if r.Method == nethttp.MethodOptions {
			w.WriteHeader(nethttp.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	nethttp.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingFilter 记录每个请求的方法、路径、状态码与耗时
func LoggingFilter(logger log.Logger) http.FilterFunc {
	helper := log.NewHelper(logger)
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: nethttp.StatusOK}
			next.ServeHTTP(rec, r)
			helper.Infow(
				"msg", "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"latency", time.Since(start).String(),
				"request_id", r.Header.Get(HeaderRequestID),
			)
		})
	}
}
