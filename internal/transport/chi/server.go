// Package chi exposes the recommendation, stress and warmup endpoints over HTTP.
package chi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/spotlight/internal/domain"
	"github.com/kailas-cloud/spotlight/internal/logger"
	healthuc "github.com/kailas-cloud/spotlight/internal/usecase/health"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"

	msgUserNotFound    = "no uid found in database"
	msgSurveyNotFound  = "something went wrong, no survey data found in database"
	msgUnknownDomain   = "no recommendation model for this domain"
	msgBadRequest      = "invalid request"
	msgRecommendFailed = "something went wrong when getting the recommendations"
	msgPredictFailed   = "something went wrong when predicting stress"
	msgInternal        = "internal error"
)

// Recommender serves recommendation lists.
type Recommender interface {
	Recommend(ctx context.Context, d domain.Domain, uid string) (domain.RecommendationList, error)
}

// StressPredictor serves stress predictions.
type StressPredictor interface {
	Predict(ctx context.Context, uid string) (any, error)
}

// HealthChecker reports backend status.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
// fallback is the route-specific message for upstream failures.
type errorHandler func(w http.ResponseWriter, err error, fallback string) bool

// responseKeys names the count and list fields of a domain's success body.
type responseKeys struct {
	message string
	count   string
	list    string
}

var domainResponses = map[domain.Domain]responseKeys{
	domain.Books:  {"returned a list of book recommendations", "title_count", "titles"},
	domain.Movies: {"successfully retrieved movie recommendation from model", "movie_count", "movies"},
	domain.Travel: {"travel recommendation successfully returned", "location_count", "recommendations"},
}

type userParams struct {
	UID string `validate:"required,max=128,printascii"`
}

// Server holds the HTTP handlers.
type Server struct {
	recommend     Recommender
	stress        StressPredictor
	health        HealthChecker
	validate      *validator.Validate
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(recommend Recommender, stress StressPredictor, health HealthChecker, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		recommend: recommend,
		stress:    stress,
		health:    health,
		validate:  validator.New(),
		logger:    log,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, msgUserNotFound),
		sentinelHandler(domain.ErrUnknownDomain, http.StatusNotFound, msgUnknownDomain),
		sentinelHandler(domain.ErrSurveyNotFound, http.StatusInternalServerError, msgSurveyNotFound),
		upstreamHandler(domain.ErrAuth),
		upstreamHandler(domain.ErrTransport),
		upstreamHandler(domain.ErrModel),
	}
	return s
}

// Routes mounts the handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/check", s.Check)
	r.Get("/warmup", s.Warmup)
	r.Get("/recommend/{domain}", s.Recommend)
	r.Get("/predict/stress", s.PredictStress)
	r.Get("/metrics", s.Metrics)
}

// Check handles GET /check.
func (s *Server) Check(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  statusSuccess,
		"message": "backend server is up",
	})
}

// Warmup handles GET /warmup. It reports 503 unless every backend answered.
// Model services are listed under services; the profile store is reported as database.
func (s *Server) Warmup(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	services := make(map[string]bool, len(report.Checks))
	body := map[string]any{
		"message":  "returning status of backend services",
		"services": services,
	}
	for name, result := range report.Checks {
		if name == healthuc.DatabaseCheck {
			body["database"] = result == healthuc.CheckOK
			continue
		}
		services[name] = result == healthuc.CheckOK
	}

	status := http.StatusOK
	if !report.Up() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, body)
}

// Recommend handles GET /recommend/{domain}?uid=.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	d := domain.Domain(chi.URLParam(r, "domain"))
	keys, ok := domainResponses[d]
	if !ok {
		writeError(w, http.StatusNotFound, msgUnknownDomain, domain.ErrUnknownDomain.Error())
		return
	}

	uid, ok := s.bindUID(w, r)
	if !ok {
		return
	}

	items, err := s.recommend.Recommend(r.Context(), d, uid)
	if err != nil {
		s.handleDomainError(w, r, err, msgRecommendFailed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   statusSuccess,
		"message":  keys.message,
		keys.count: len(items),
		keys.list:  items,
	})
}

// PredictStress handles GET /predict/stress?uid=.
func (s *Server) PredictStress(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.bindUID(w, r)
	if !ok {
		return
	}

	prediction, err := s.stress.Predict(r.Context(), uid)
	if err != nil {
		s.handleDomainError(w, r, err, msgPredictFailed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     statusSuccess,
		"message":    "stress prediction successful",
		"prediction": prediction,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// bindUID reads and validates the uid query parameter. On failure it writes a 400.
func (s *Server) bindUID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var p userParams
	if err := runtime.BindQueryParameter("form", true, true, "uid", r.URL.Query(), &p.UID); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest, "uid query parameter is required")
		return "", false
	}
	if err := s.validate.Struct(p); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest, validationMessage(err))
		return "", false
	}
	return p.UID, true
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return "uid failed " + ve[0].Tag() + " validation"
	}
	return "uid is invalid"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	body := map[string]string{
		"status":  statusFailure,
		"message": message,
	}
	if detail != "" {
		body["error_msg"] = detail
	}
	writeJSON(w, status, body)
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUserNotFound,
		domain.ErrSurveyNotFound,
		domain.ErrUnknownDomain,
		domain.ErrAuth,
		domain.ErrTransport,
		domain.ErrModel,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return msgInternal
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error, _ string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message, "")
		return true
	}
}

// upstreamHandler maps a model service failure to 502 with the route's message.
func upstreamHandler(sentinel error) errorHandler {
	return func(w http.ResponseWriter, err error, fallback string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, http.StatusBadGateway, fallback, safeDomainMessage(err))
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err, fallback) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, fallback, msgInternal)
}
