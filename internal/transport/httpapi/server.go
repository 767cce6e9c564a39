package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"NewsGuard/internal/domain"
	"NewsGuard/internal/model"
	"NewsGuard/internal/ports"
	"NewsGuard/internal/usecase"
)

// Batch requests are capped to keep a single call bounded.
const maxBatchItems = 10

// ServerConfig carries the transport-level settings.
type ServerConfig struct {
	APIKey        string
	RatePerMinute int
	RateBurst     int
}

// Server exposes the detection core over HTTP. It owns only transport
// concerns: auth, rate limiting, JSON shaping and status-code mapping.
type Server struct {
	cfg       ServerConfig
	detector  *usecase.Detector
	trainer   *usecase.Trainer
	extractor ports.ArticleExtractor
	history   ports.DetectionHistory
	models    *model.Handle
	limiter   *clientLimiter
	logger    *slog.Logger
}

// NewServer wires the API surface. Trainer, extractor and history are
// optional; their endpoints degrade gracefully when absent.
func NewServer(cfg ServerConfig, detector *usecase.Detector, trainer *usecase.Trainer, extractor ports.ArticleExtractor, history ports.DetectionHistory, models *model.Handle, logger *slog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		detector:  detector,
		trainer:   trainer,
		extractor: extractor,
		history:   history,
		models:    models,
		limiter:   newClientLimiter(cfg.RatePerMinute, cfg.RateBurst),
		logger:    logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	protect := func(h http.HandlerFunc) http.Handler {
		return s.requireAPIKey(s.rateLimit(h))
	}
	mux.Handle("POST /api/analyze", protect(s.handleAnalyze))
	mux.Handle("POST /api/analyze/batch", protect(s.handleAnalyzeBatch))
	mux.Handle("POST /api/train", protect(s.handleTrain))
	mux.Handle("GET /api/stats", protect(s.handleStats))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "healthy",
		"model_trained": s.models.Ready(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

type analyzeRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type analyzeResponse struct {
	domain.DetectionResult
	InputType  string `json:"input_type"`
	TextLength int    `json:"text_length"`
	Timestamp  string `json:"timestamp"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, status, errMsg := s.analyzeOne(r, req)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type batchRequest struct {
	Items []analyzeRequest `json:"items"`
}

type batchItemResponse struct {
	Index  int              `json:"index"`
	Result *analyzeResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "no items provided")
		return
	}
	if len(req.Items) > maxBatchItems {
		writeError(w, http.StatusBadRequest, "too many items (maximum "+strconv.Itoa(maxBatchItems)+")")
		return
	}

	results := make([]batchItemResponse, len(req.Items))
	for i, item := range req.Items {
		resp, _, errMsg := s.analyzeOne(r, item)
		results[i] = batchItemResponse{Index: i}
		if errMsg != "" {
			results[i].Error = errMsg
		} else {
			results[i].Result = resp
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// analyzeOne resolves URL inputs through the extractor and runs detection.
func (s *Server) analyzeOne(r *http.Request, req analyzeRequest) (*analyzeResponse, int, string) {
	inputType := req.Type
	if inputType == "" {
		inputType = "text"
	}
	if inputType != "text" && inputType != "url" {
		return nil, http.StatusBadRequest, `invalid input type, use "text" or "url"`
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, http.StatusBadRequest, "content cannot be empty"
	}

	text := req.Content
	if inputType == "url" {
		if s.extractor == nil {
			return nil, http.StatusBadRequest, "URL analysis is not configured"
		}
		extracted, err := s.extractor.Extract(r.Context(), req.Content)
		if err != nil {
			return nil, http.StatusBadRequest, "could not extract article: " + err.Error()
		}
		text = extracted
	}

	result, err := s.detector.DetectInput(r.Context(), text, inputType)
	if err != nil {
		status, msg := mapDetectError(err)
		return nil, status, msg
	}

	s.logInfo("prediction", "label", result.Label, "confidence", result.Confidence, "input_type", inputType)
	return &analyzeResponse{
		DetectionResult: result,
		InputType:       inputType,
		TextLength:      len(text),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}, 0, ""
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	if s.trainer == nil {
		writeError(w, http.StatusServiceUnavailable, "training is not configured")
		return
	}

	report, err := s.trainer.Run(r.Context())
	if err != nil {
		var stageErr *usecase.StageError
		if errors.As(err, &stageErr) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": "training failed",
				"stage": string(stageErr.Stage),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "training failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "model trained successfully",
		"report":  report,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"model_trained": s.models.Ready(),
	}
	if m, err := s.models.Current(); err == nil {
		payload["model"] = m.Meta
	}
	if s.history != nil {
		stats, err := s.history.Stats(r.Context())
		if err != nil {
			s.logWarn("history stats", "error", err)
		} else {
			payload["history"] = stats
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

// mapDetectError translates core errors into transport status codes.
func mapDetectError(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrModelNotTrained):
		return http.StatusServiceUnavailable, "model not trained yet, trigger /api/train first"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
