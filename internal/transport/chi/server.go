package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/surfcmp/internal/domain"
	"github.com/kailas-cloud/surfcmp/internal/domain/consensus"
	"github.com/kailas-cloud/surfcmp/internal/domain/match"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
	logpkg "github.com/kailas-cloud/surfcmp/internal/logger"
	healthuc "github.com/kailas-cloud/surfcmp/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// comparer classifies object pairs (ISP).
type comparer interface {
	CompareDetailed(ctx context.Context, objs []object.Object, mode tolerance.Mode) (match.Report, error)
}

// healthChecker reports component health (ISP).
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the surfcmp HTTP API.
type Server struct {
	compare       comparer
	health        healthChecker
	defaultMode   tolerance.Mode
	maxBodyBytes  int64
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(compare comparer, health healthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		compare:      compare,
		health:       health,
		defaultMode:  tolerance.ModeFixed,
		maxBodyBytes: 16 << 20,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidObject, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrTooManyObjects, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrDegenerateVector, http.StatusUnprocessableEntity, ErrorCodeDegenerateVector),
	}
	return s
}

// WithDefaultMode sets the mode used when neither query nor body carries one.
func (s *Server) WithDefaultMode(m tolerance.Mode) *Server {
	if m != "" {
		s.defaultMode = m
	}
	return s
}

// WithMaxBodyBytes limits the compare request body size.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/compare", s.Compare)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Compare handles POST /v1/compare.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	params, err := bindCompareParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Objects == nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "objects is required")
		return
	}

	objs, err := objectsFromRequest(req.Objects)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	mode := s.resolveMode(params.Mode, req.Mode)
	report, err := s.compare.CompareDetailed(r.Context(), objs, mode)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := CompareResponse{Matches: report.Mapping()}
	if params.Detail != nil && *params.Detail {
		items := pairsToResponse(report.Matches)
		resp.Pairs = &items
	}
	writeJSON(w, http.StatusOK, resp)
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

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func bindCompareParams(r *http.Request) (CompareParams, error) {
	var params CompareParams
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "mode", query, &params.Mode); err != nil {
		return CompareParams{}, fmt.Errorf("invalid format for parameter mode: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "detail", query, &params.Detail); err != nil {
		return CompareParams{}, fmt.Errorf("invalid format for parameter detail: %w", err)
	}
	return params, nil
}

// resolveMode picks the query mode, then the body mode, then the server default.
func (s *Server) resolveMode(query, body *string) tolerance.Mode {
	switch {
	case query != nil && *query != "":
		return tolerance.Mode(*query)
	case body != nil && *body != "":
		return tolerance.Mode(*body)
	default:
		return s.defaultMode
	}
}

func objectsFromRequest(records map[string]ObjectRecord) ([]object.Object, error) {
	objs := make([]object.Object, 0, len(records))
	for key, rec := range records {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("object key %q is not an integer id: %w", key, domain.ErrInvalidObject)
		}
		o, err := object.New(id, rec.Kind, rec.Coefficients)
		if err != nil {
			return nil, err //nolint:wrapcheck // ObjectError carries the id
		}
		objs = append(objs, o)
	}
	return objs, nil
}

func pairsToResponse(l match.List) []PairItem {
	items := make([]PairItem, len(l))
	for i, m := range l {
		items[i] = PairItem{
			ID:             m.ID,
			Partner:        m.Partner,
			Category:       string(m.Category),
			Classification: m.Classification.String(),
			Value:          m.Value(),
		}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Object and degenerate-pair errors describe the caller's own input and are returned as is.
func safeDomainMessage(err error) string {
	var oe *domain.ObjectError
	if errors.As(err, &oe) {
		return oe.Error()
	}
	var de *consensus.DegenerateError
	if errors.As(err, &de) {
		return de.Error()
	}
	sentinels := []error{
		domain.ErrInvalidObject,
		domain.ErrTooManyObjects,
		domain.ErrDegenerateVector,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
