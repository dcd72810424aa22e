package service

import (
	"fmt"
	"strings"
)

// maxListedOffenders 批量校验错误最多列出的非法输入数
const maxListedOffenders = 5

// ValidationError rejects a whole request before any network call. It lists
// a bounded number of offending inputs so the caller can correct them. This
// is the only error category that aborts a scan; everything downstream
// degrades per-combination instead.
type ValidationError struct {
	Field     string   `json:"field"`
	Offenders []string `json:"offenders,omitempty"` // 截断到 maxListedOffenders
	Total     int      `json:"total"`
	Message   string   `json:"message"`
}

func (e *ValidationError) Error() string {
	if len(e.Offenders) == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	suffix := ""
	if e.Total > len(e.Offenders) {
		suffix = fmt.Sprintf(" (and %d more)", e.Total-len(e.Offenders))
	}
	return fmt.Sprintf("%s: %s: %s%s", e.Field, e.Message, strings.Join(e.Offenders, ", "), suffix)
}

// NewValidationError builds a batch validation error, truncating the
// offender list for display.
func NewValidationError(field, message string, offenders []string) *ValidationError {
	total := len(offenders)
	if len(offenders) > maxListedOffenders {
		offenders = offenders[:maxListedOffenders]
	}
	return &ValidationError{
		Field:     field,
		Offenders: offenders,
		Total:     total,
		Message:   message,
	}
}
