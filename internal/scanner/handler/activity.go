package handler

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finaiguard/internal/scanner/service"
	"finaiguard/pkg/logger"
)

// ActivityRequestBody 活动分析请求体，日期格式 YYYY-MM-DD
type ActivityRequestBody struct {
	Address        string `json:"address"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	LargeThreshold string `json:"large_threshold,omitempty"` // 空值用默认阈值
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := logger.StartSpanWithRequest(r, "handler", "activity")
	defer span.End()
	tl := logger.NewLoggerWithTrace(ctx, s.tl)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable request body"})
		return
	}
	var req ActivityRequestBody
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON request body"})
		return
	}

	threshold := decimal.Zero
	if req.LargeThreshold != "" {
		threshold, err = decimal.NewFromString(req.LargeThreshold)
		if err != nil {
			writeError(w, service.NewValidationError("large_threshold", "not a decimal number", []string{req.LargeThreshold}))
			return
		}
	}

	summary, err := s.activity.Analyze(ctx, req.Address, req.StartDate, req.EndDate, threshold)
	if err != nil {
		tl.Warn("Activity request failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
