// Package server exposes element combination over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lingocraft/lingocraft/internal/element"
	"github.com/lingocraft/lingocraft/internal/translation"
)

const maxRequestBytes = 1 << 16

// ElementResolver answers combinations. *element.Resolver implements it.
type ElementResolver interface {
	ResolveInLanguage(ctx context.Context, element1, element2, languageCode string) element.Result
	DefaultLanguage() string
}

type Handler struct {
	resolver  ElementResolver
	audio     element.AudioRepository
	table     *translation.Table
	validator *requestValidator
	origins   map[string]bool
}

// NewHandler creates a Handler. allowedOrigins also restricts WebSocket upgrades.
func NewHandler(resolver ElementResolver, audio element.AudioRepository, table *translation.Table, allowedOrigins []string) (*Handler, error) {
	validator, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}
	return &Handler{
		resolver:  resolver,
		audio:     audio,
		table:     table,
		validator: validator,
		origins:   origins,
	}, nil
}

type CombineRequest struct {
	Element1     string `json:"element1" validate:"required,max=100"`
	Element2     string `json:"element2" validate:"required,max=100"`
	LanguageCode string `json:"languageCode,omitempty" validate:"omitempty,supported_language"`
}

type CreateElementResponse struct {
	Element string `json:"element"`
	Emoji   string `json:"emoji"`
}

type CombineResponse struct {
	element.Result
	Combination string `json:"combination"`
}

type InitialElementsResponse struct {
	Elements []translation.InitialElement `json:"elements"`
	Language string                       `json:"language"`
}

type InitialAudioResponse struct {
	Language string            `json:"language"`
	Audio    map[string]string `json:"audio"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "lingocraft element server")
}

// CreateElement answers with the result name and emoji only.
func (h *Handler) CreateElement(w http.ResponseWriter, r *http.Request) {
	request, ok := h.decodeCombineRequest(w, r)
	if !ok {
		return
	}
	result := h.combine(r.Context(), request)
	writeJSON(r.Context(), w, http.StatusOK, CreateElementResponse{
		Element: result.Element,
		Emoji:   result.Emoji,
	})
}

// CombineElements answers with the full result, including English text and audio.
func (h *Handler) CombineElements(w http.ResponseWriter, r *http.Request) {
	request, ok := h.decodeCombineRequest(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, CombineResponse{
		Result:      h.combine(r.Context(), request),
		Combination: combination(request),
	})
}

func (h *Handler) InitialElements(w http.ResponseWriter, r *http.Request) {
	languageCode := r.PathValue("languageCode")
	if languageCode == "" {
		languageCode = translation.DefaultLanguage
	}
	writeJSON(r.Context(), w, http.StatusOK, InitialElementsResponse{
		Elements: h.table.InitialElements(languageCode),
		Language: languageCode,
	})
}

func (h *Handler) InitialAudio(w http.ResponseWriter, r *http.Request) {
	languageCode := r.PathValue("languageCode")
	audios, err := h.audio.FindByLanguage(r.Context(), languageCode)
	if err != nil {
		logger(r.Context()).Error("failed to load initial element audio",
			"language", languageCode,
			"error", err,
		)
		writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	audio := make(map[string]string, len(audios))
	for _, a := range audios {
		if a.AudioB64 != nil && *a.AudioB64 != "" {
			audio[a.ElementKey] = *a.AudioB64
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, InitialAudioResponse{
		Language: languageCode,
		Audio:    audio,
	})
}

func (h *Handler) combine(ctx context.Context, request CombineRequest) element.Result {
	languageCode := request.LanguageCode
	if languageCode == "" {
		languageCode = h.resolver.DefaultLanguage()
	}
	result := h.resolver.ResolveInLanguage(ctx, request.Element1, request.Element2, languageCode)
	logger(ctx).Info("combined elements",
		"element1", request.Element1,
		"element2", request.Element2,
		"language", languageCode,
		"result", result.Element,
	)
	return result
}

func (h *Handler) decodeCombineRequest(w http.ResponseWriter, r *http.Request) (CombineRequest, bool) {
	var request CombineRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(&request); err != nil {
		message := "request body must be a JSON object"
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			message = "request body is too large"
		}
		writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: message})
		return CombineRequest{}, false
	}
	if err := h.validateCombineRequest(&request); err != nil {
		writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return CombineRequest{}, false
	}
	return request, true
}

func (h *Handler) validateCombineRequest(request *CombineRequest) error {
	request.Element1 = strings.TrimSpace(request.Element1)
	request.Element2 = strings.TrimSpace(request.Element2)
	request.LanguageCode = strings.TrimSpace(request.LanguageCode)
	return h.validator.Struct(request)
}

func combination(request CombineRequest) string {
	return request.Element1 + " + " + request.Element2
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger(ctx).Warn("failed to write response", "error", err)
	}
}

func logger(ctx context.Context) *slog.Logger {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return slog.Default().With("request_id", requestID)
	}
	return slog.Default()
}
