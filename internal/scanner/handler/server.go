package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"finaiguard/internal/scanner/config"
	"finaiguard/internal/scanner/service"
)

// Server 对外 API 服务，提供扫描、导出与活动分析接口
type Server struct {
	cfg      config.ServerConfig
	tl       *zap.Logger
	scanner  *service.Scanner
	activity *service.ActivityService
	server   *http.Server
}

func NewServer(cfg config.ServerConfig, logger *zap.Logger, scanner *service.Scanner, activity *service.ActivityService) *Server {
	s := &Server{
		cfg:      cfg,
		tl:       logger,
		scanner:  scanner,
		activity: activity,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/scan", s.handleScan)
	mux.HandleFunc("POST /api/v1/scan/export", s.handleScanExport)
	mux.HandleFunc("POST /api/v1/activity", s.handleActivity)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
	return s
}

// Run 启动 API 服务
func (s *Server) Run() {
	go func() {
		s.tl.Info("API server listening", zap.String("addr", s.cfg.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.tl.Error("API server stopped unexpectedly", zap.Error(err))
		}
	}()
}

// Stop 优雅关闭 API 服务
func (s *Server) Stop(ctx context.Context) error {
	s.server.SetKeepAlivesEnabled(false)
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// writeError 按错误类别映射状态码，校验错误带上可修正的输入明细
func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":     verr.Message,
			"field":     verr.Field,
			"offenders": verr.Offenders,
			"total":     verr.Total,
		})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]interface{}{
		"error": err.Error(),
	})
}
