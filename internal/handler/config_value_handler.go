// Package handler はHTTPハンドラを提供する。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"encrypted-config-value/config"
	"encrypted-config-value/internal/domain"
	"encrypted-config-value/internal/middleware"
	"encrypted-config-value/internal/usecase"
	"encrypted-config-value/pkg/httputil"
)

const (
	opDescribeKey   = "DESCRIBE_KEY"
	opEncryptValue  = "ENCRYPT_VALUE"
	opCheckDocument = "CHECK_DOCUMENT"
)

// ConfigValueHandler はHTTPハンドラを提供する。
type ConfigValueHandler struct {
	keys         *usecase.KeyService
	substitution *usecase.SubstitutionService
	auditor      *middleware.Auditor
}

// NewConfigValueHandler は新しいConfigValueHandlerを生成する。
func NewConfigValueHandler(keys *usecase.KeyService, substitution *usecase.SubstitutionService, auditor *middleware.Auditor) *ConfigValueHandler {
	return &ConfigValueHandler{
		keys:         keys,
		substitution: substitution,
		auditor:      auditor,
	}
}

// KeyResponse は鍵情報のレスポンス形式。
type KeyResponse struct {
	Type        string `json:"type"`
	Algorithm   string `json:"algorithm"`
	Fingerprint string `json:"fingerprint"`
	PublicKey   string `json:"public_key,omitempty"`
}

// EncryptRequest は暗号化リクエストの形式。
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
}

// EncryptResponse は暗号化レスポンスの形式。
type EncryptResponse struct {
	Value string `json:"value"`
}

// CheckResponse はドキュメント検証に成功した場合のレスポンス形式。
type CheckResponse struct {
	OK           bool `json:"ok"`
	Placeholders int  `json:"placeholders"`
}

// SubstitutionErrorResponse は置換できなかった値を示すレスポンス形式。
type SubstitutionErrorResponse struct {
	httputil.ErrorResponse
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *ConfigValueHandler) keyType(ctx context.Context) domain.KeyType {
	pair, err := h.keys.KeyPair(ctx)
	if err != nil {
		return ""
	}
	return pair.EncryptionKey().Type()
}

// Health はヘルスチェックに応答する。
func (h *ConfigValueHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetCurrentKey は現在の鍵の公開可能な情報を返す。
func (h *ConfigValueHandler) GetCurrentKey(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	desc, err := h.keys.Describe(r.Context())
	if err != nil {
		h.auditor.Record(r.Context(), opDescribeKey, "", start, err)
		writeKeyError(w, r, err)
		return
	}

	h.auditor.Record(r.Context(), opDescribeKey, desc.Type, start, nil)
	httputil.JSON(w, http.StatusOK, KeyResponse{
		Type:        desc.Type.String(),
		Algorithm:   string(desc.Algorithm),
		Fingerprint: desc.Fingerprint,
		PublicKey:   desc.PublicKey,
	})
}

// EncryptValue は平文を暗号化する。
func (h *ConfigValueHandler) EncryptValue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req EncryptRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object with a plaintext field")
		return
	}

	value, err := h.keys.EncryptValue(r.Context(), req.Plaintext)
	h.auditor.Record(r.Context(), opEncryptValue, h.keyType(r.Context()), start, err)
	if err != nil {
		if errors.Is(err, domain.ErrPlaintextTooLarge) {
			httputil.Error(w, http.StatusBadRequest, "PLAINTEXT_TOO_LARGE", "plaintext is too large for the configured key")
			return
		}
		writeKeyError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, EncryptResponse{Value: value})
}

// CheckDocument はYAMLまたはJSONのドキュメント中の全てのプレースホルダを復号できるか検証する。
func (h *ConfigValueHandler) CheckDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := httputil.ReadBody(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to read request body")
		return
	}
	doc, err := config.ParseDocument(body)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_DOCUMENT", "request body is not a valid YAML or JSON document")
		return
	}

	result, err := h.substitution.CheckDocument(r.Context(), doc)
	if err != nil {
		h.auditor.Record(r.Context(), opCheckDocument, "", start, err)
		writeKeyError(w, r, err)
		return
	}
	if !result.OK() {
		h.auditor.Record(r.Context(), opCheckDocument, h.keyType(r.Context()), start, result.Failure)
		httputil.JSON(w, http.StatusUnprocessableEntity, SubstitutionErrorResponse{
			ErrorResponse: httputil.ErrorResponse{
				Code:    "SUBSTITUTION_FAILED",
				Message: result.Failure.Error(),
			},
			Field: result.Failure.Field(),
			Value: result.Failure.Value(),
		})
		return
	}

	h.auditor.Record(r.Context(), opCheckDocument, h.keyType(r.Context()), start, nil)
	httputil.JSON(w, http.StatusOK, CheckResponse{OK: true, Placeholders: result.Placeholders})
}

func writeKeyError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrKeyNotFound) {
		httputil.Error(w, http.StatusNotFound, "KEY_NOT_FOUND", "no key is configured")
		return
	}
	slog.ErrorContext(r.Context(), "request failed",
		"path", r.URL.Path,
		"error", err,
	)
	httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
