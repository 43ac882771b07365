package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/yildizm/HumanizePro/internal/ai"
	"github.com/yildizm/HumanizePro/internal/common"
	"github.com/yildizm/HumanizePro/internal/detector"
	"github.com/yildizm/HumanizePro/internal/logger"
)

const (
	healthTimeout = 5 * time.Second

	// upstreamRetryAfter is advertised when the model provider throttles us
	upstreamRetryAfter = 30 * time.Second
)

type handlerFunc func(http.ResponseWriter, *http.Request) error

// statusError carries the status a handler failure maps to
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return e.message
}

func badRequest(format string, args ...any) error {
	return &statusError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

// wrap maps handler errors onto JSON error responses. Model failures
// surface only their fixed user-facing message.
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var se *statusError
		var analysisErr *detector.AnalysisError
		var humanizeErr *detector.HumanizeError
		switch {
		case errors.As(err, &se):
			writeError(w, se.status, se.message)
		case errors.As(err, &analysisErr), errors.As(err, &humanizeErr):
			s.log.WarnWithFields("model call failed", []logger.Field{
				logger.RequestID(RequestIDFrom(req.Context())),
				logger.F("detail", detector.Detail(err)),
			})
			// A throttled upstream is worth retrying; anything else is not
			if ai.IsRateLimitError(err) {
				w.Header().Set("Retry-After", strconv.Itoa(int(upstreamRetryAfter/time.Second)))
				writeError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			s.log.ErrorWithFields("request failed", []logger.Field{
				logger.RequestID(RequestIDFrom(req.Context())),
				logger.Error(err),
			})
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type humanizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Tone     string `json:"tone"`
}

type humanizeResponse struct {
	Text string `json:"text"`
}

// POST /api/analyze
// Body: {"text": "..."}
func (s *Server) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if common.IsBlank(body.Text) {
		return badRequest("text is required")
	}

	result, err := s.detector.Analyze(req.Context(), body.Text)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, result)
}

// POST /api/humanize
// Body: {"text": "...", "language": "English", "tone": "Casual"}
// Language and tone default to English and Casual when omitted.
func (s *Server) handleHumanize(w http.ResponseWriter, req *http.Request) error {
	var body humanizeRequest
	if err := decodeBody(req, &body); err != nil {
		return err
	}
	if common.IsBlank(body.Text) {
		return badRequest("text is required")
	}

	language := common.DefaultLanguage
	if body.Language != "" {
		parsed, err := common.ParseLanguage(body.Language)
		if err != nil {
			return badRequest("%v", err)
		}
		language = parsed
	}
	tone := common.DefaultTone
	if body.Tone != "" {
		parsed, err := common.ParseTone(body.Tone)
		if err != nil {
			return badRequest("%v", err)
		}
		tone = parsed
	}

	text, err := s.detector.Humanize(req.Context(), body.Text, language, tone)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, humanizeResponse{Text: text})
}

type optionsResponse struct {
	Languages []common.Language `json:"languages"`
	Tones     []common.Tone     `json:"tones"`
	Defaults  struct {
		Language common.Language `json:"language"`
		Tone     common.Tone     `json:"tone"`
	} `json:"defaults"`
}

// GET /api/options
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	resp := optionsResponse{
		Languages: common.Languages(),
		Tones:     common.Tones(),
	}
	resp.Defaults.Language = common.DefaultLanguage
	resp.Defaults.Tone = common.DefaultTone
	_ = writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	resp := healthResponse{Status: "ok", Provider: s.opts.Provider, Model: s.opts.Model}
	if s.opts.Health == nil {
		_ = writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), healthTimeout)
	defer cancel()
	if err := s.opts.Health(ctx); err != nil {
		resp.Status = "unavailable"
		resp.Error = err.Error()
		_ = writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// decodeBody reads exactly one JSON object from the request
func decodeBody(req *http.Request, v any) error {
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &statusError{status: http.StatusRequestEntityTooLarge, message: "request body too large"}
		case errors.Is(err, io.EOF):
			return badRequest("request body is empty")
		default:
			return badRequest("invalid JSON body: %v", err)
		}
	}
	if dec.More() {
		return badRequest("request body must contain a single JSON object")
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	_ = writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
