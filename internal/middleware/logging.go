// Package middleware は監査ログと操作メトリクスの記録を提供する。
package middleware

import (
	"context"
	"log/slog"
	"time"

	"encrypted-config-value/internal/domain"
)

const (
	ResultSuccess = "SUCCESS"
	ResultFailed  = "FAILED"
)

// AuditLog は監査ログの構造体。
type AuditLog struct {
	Operation string `json:"operation"`
	KeyType   string `json:"key_type,omitempty"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}

// WriteAuditLog は監査ログを出力する。平文や鍵素材は渡さない。
func WriteAuditLog(ctx context.Context, operation string, keyType domain.KeyType, result string) {
	slog.InfoContext(ctx, "config value operation completed",
		"operation", operation,
		"key_type", keyType.String(),
		"result", result,
		"timestamp", time.Now().UTC().Format(time.RFC3339),
	)
}

// OperationRecorder は操作の結果を記録する。infra.Metrics が実装する。
type OperationRecorder interface {
	ObserveOperation(operation string, start time.Time, err error)
}

// Auditor は監査ログとメトリクスをまとめて記録する。
type Auditor struct {
	recorder OperationRecorder
}

// NewAuditor は新しいAuditorを生成する。recorder が nil の場合は監査ログのみ出力する。
func NewAuditor(recorder OperationRecorder) *Auditor {
	return &Auditor{recorder: recorder}
}

// Record は操作の結果を記録する。
func (a *Auditor) Record(ctx context.Context, operation string, keyType domain.KeyType, start time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailed
	}
	WriteAuditLog(ctx, operation, keyType, result)
	if a != nil && a.recorder != nil {
		a.recorder.ObserveOperation(operation, start, err)
	}
}
