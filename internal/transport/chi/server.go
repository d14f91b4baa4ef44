package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/response"
	"github.com/kailas-cloud/onimo/internal/domain/session"
	"github.com/kailas-cloud/onimo/internal/logger"
	healthuc "github.com/kailas-cloud/onimo/internal/usecase/health"
	"github.com/kailas-cloud/onimo/internal/usecase/pipeline"
	"github.com/kailas-cloud/onimo/internal/version"
)

const maxBodyBytes = 64 << 10

// Transport-level replies that never reach the pipeline.
const (
	msgInvalidBody         = "Invalid request body."
	msgUnsupportedLanguage = "Unsupported language. Use en or bn."
	msgRateLimited         = "Too many requests. Please try again later."
	msgNotFound            = "Not found."
	msgMethodNotAllowed    = "Method not allowed."
	msgInternal            = "Internal error."
)

// Server serves the assistant over HTTP. All requests share one session.
type Server struct {
	assistant Assistant
	session   *session.State
	health    HealthChecker
	validate  *validator.Validate
	msgs      pipeline.Messages
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(assistant Assistant, sess *session.State, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{
		assistant: assistant,
		session:   sess,
		health:    health,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		msgs:      pipeline.DefaultMessages(),
		logger:    logger,
	}
}

// WithMessages sets the replies used when a request fails validation.
// Keep them in line with the pipeline's.
func (s *Server) WithMessages(m pipeline.Messages) *Server {
	s.msgs = m
	return s
}

// Ask handles POST /ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeResponse(w, response.Error(s.msgs.EmptyQuery))
		return
	}

	writeResponse(w, s.assistant.Ask(r.Context(), s.session, req.Query))
}

// FactCheck handles POST /fact-check.
func (s *Server) FactCheck(w http.ResponseWriter, r *http.Request) {
	var req factCheckRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeResponse(w, response.Error(s.msgs.InvalidVideo))
		return
	}

	writeResponse(w, s.assistant.FactCheckVideo(r.Context(), s.session, req.target()))
}

// GetLanguage handles GET /language.
func (s *Server) GetLanguage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, languageResponse{Language: s.session.Language()})
}

// SetLanguage handles PUT /language. Unlike a spoken switch command it
// replies with no message.
func (s *Server) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeResponse(w, response.Error(msgUnsupportedLanguage))
		return
	}
	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		writeResponse(w, response.Error(msgUnsupportedLanguage))
		return
	}

	prev, err := s.session.Set(lang)
	if err != nil {
		writeResponse(w, response.Error(msgUnsupportedLanguage))
		return
	}
	domain.TraceFromContext(r.Context()).SetLanguage(lang)
	logger.FromContext(r.Context()).Info("Session language set",
		zap.String("previous", string(prev)),
		zap.String("language", string(lang)),
	)
	writeJSON(w, http.StatusOK, languageResponse{Language: lang, Previous: prev})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v, replying with an error response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, response.Error(s.msgs.QueryTooLong))
			return false
		}
		logger.FromContext(r.Context()).Debug("Invalid request body", zap.Error(err))
		writeResponse(w, response.Error(msgInvalidBody))
		return false
	}
	return true
}

// writeResponse sends an assistant response: 400 for error status, 200 otherwise.
func writeResponse(w http.ResponseWriter, resp response.Response) {
	status := http.StatusOK
	if resp.Status == response.StatusError {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
