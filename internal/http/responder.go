package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/generator"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/persistence"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/session"
)

var (
	errBadRequestBody    = errors.New("無効なリクエスト形式です。")
	errInvalidSessionID  = errors.New("無効なセッション ID です。")
	errInvalidDateParam  = errors.New("日付は YYYY-MM-DD 形式で指定してください。")
	errNoDocument        = errors.New("エクスポートできるリストがありません。")
	errMissingBasicCreds = errors.New("認証情報を指定してください。")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps domain errors to HTTP responses.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var rangeErr *generator.RangeError
	switch {
	case errors.As(err, &rangeErr):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "INVALID_DATE_RANGE",
			Message:   rangeErr.Message,
		})
	case errors.Is(err, session.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "セッションが見つかりません。"})
	case errors.Is(err, session.ErrGenerationNotAllowed):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "GENERATION_NOT_ALLOWED",
			Message:   "設定が変更されていないため再生成できません。",
		})
	case errors.Is(err, session.ErrInvalidPreset):
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Message: "プリセットの指定が正しくありません。"})
	case errors.Is(err, persistence.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "指定されたリソースが見つかりません。"})
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "unhandled service error", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "サーバー内部でエラーが発生しました。"})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "リクエスト内容が正しくありません。"
	case http.StatusUnauthorized:
		return "認証が必要です。"
	case http.StatusForbidden:
		return "この操作を実行する権限がありません。"
	case http.StatusNotFound:
		return "指定されたリソースが見つかりません。"
	case http.StatusConflict:
		return "要求はリソースの現在の状態と競合しています。"
	case http.StatusUnprocessableEntity:
		return "入力内容に誤りがあります。"
	default:
		return "サーバー内部でエラーが発生しました。"
	}
}

type errorResponse struct {
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message"`
}
