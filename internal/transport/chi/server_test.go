package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/spotlight/internal/domain"
	healthuc "github.com/kailas-cloud/spotlight/internal/usecase/health"
)

// --- Mocks ---

type mockRecommender struct {
	items  domain.RecommendationList
	err    error
	gotUID string
	gotDom domain.Domain
	calls  int
}

func (m *mockRecommender) Recommend(_ context.Context, d domain.Domain, uid string) (domain.RecommendationList, error) {
	m.calls++
	m.gotDom, m.gotUID = d, uid
	return m.items, m.err
}

type mockStress struct {
	prediction any
	err        error
}

func (m *mockStress) Predict(context.Context, string) (any, error) {
	return m.prediction, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report {
	return m.report
}

func newTestRouter(rec *mockRecommender, st *mockStress, h *mockHealth) http.Handler {
	if rec == nil {
		rec = &mockRecommender{}
	}
	if st == nil {
		st = &mockStress{}
	}
	if h == nil {
		h = &mockHealth{}
	}
	return NewRouter(NewServer(rec, st, h, zap.NewNop()), nil, zap.NewNop())
}

func do(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	var body map[string]any
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body %q: %v", rr.Body.String(), err)
		}
	}
	return rr, body
}

func bookItems(titles ...string) domain.RecommendationList {
	raws := make([]domain.RawItem, len(titles))
	for i, title := range titles {
		raws[i] = domain.RawItem{"Book": title}
	}
	items := domain.NewItems(raws)
	for i := range items {
		items[i].Enrich(domain.Metadata{"coverUrl": "https://img/" + titles[i]})
	}
	return items
}

// --- Check / Warmup ---

func TestCheck(t *testing.T) {
	rr, body := do(t, newTestRouter(nil, nil, nil), "/check")

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	if body["status"] != "success" || body["message"] != "backend server is up" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestWarmup(t *testing.T) {
	tests := []struct {
		name   string
		report healthuc.Report
		want   int
	}{
		{
			name: "all up",
			report: healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{
				"book_api": healthuc.CheckOK, "stress_api": healthuc.CheckOK,
			}},
			want: http.StatusOK,
		},
		{
			name: "one down",
			report: healthuc.Report{Status: healthuc.Degraded, Checks: map[string]healthuc.CheckResult{
				"book_api": healthuc.CheckOK, "stress_api": healthuc.CheckError,
			}},
			want: http.StatusServiceUnavailable,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := do(t, newTestRouter(nil, nil, &mockHealth{report: tc.report}), "/warmup")

			if rr.Code != tc.want {
				t.Fatalf("got %d, want %d", rr.Code, tc.want)
			}
			if body["message"] != "returning status of backend services" {
				t.Errorf("message: %v", body["message"])
			}
			services, ok := body["services"].(map[string]any)
			if !ok {
				t.Fatalf("services missing: %v", body)
			}
			if len(services) != len(tc.report.Checks) {
				t.Errorf("services = %v", services)
			}
			for name, result := range tc.report.Checks {
				if services[name] != (result == healthuc.CheckOK) {
					t.Errorf("%s: got %v", name, services[name])
				}
			}
			if _, ok := body["status"]; ok {
				t.Error("warmup body must not carry a top-level status")
			}
		})
	}
}

func TestWarmup_DatabaseReportedOutsideServices(t *testing.T) {
	report := healthuc.Report{Status: healthuc.Degraded, Checks: map[string]healthuc.CheckResult{
		"book_api":             healthuc.CheckOK,
		"movie_api":            healthuc.CheckOK,
		"travel_api":           healthuc.CheckOK,
		"stress_api":           healthuc.CheckOK,
		healthuc.DatabaseCheck: healthuc.CheckError,
	}}
	rr, body := do(t, newTestRouter(nil, nil, &mockHealth{report: report}), "/warmup")

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", rr.Code)
	}
	services, _ := body["services"].(map[string]any)
	if _, ok := services[healthuc.DatabaseCheck]; ok {
		t.Errorf("database must not be listed as a model service: %v", services)
	}
	if len(services) != 4 {
		t.Errorf("expected the four model services, got %v", services)
	}
	if body["database"] != false {
		t.Errorf("database = %v, want false", body["database"])
	}
}

// --- Recommend ---

func TestRecommend_ResponseShapes(t *testing.T) {
	tests := []struct {
		domain  string
		message string
		count   string
		list    string
	}{
		{"books", "returned a list of book recommendations", "title_count", "titles"},
		{"movies", "successfully retrieved movie recommendation from model", "movie_count", "movies"},
		{"travel", "travel recommendation successfully returned", "location_count", "recommendations"},
	}
	for _, tc := range tests {
		t.Run(tc.domain, func(t *testing.T) {
			rec := &mockRecommender{items: bookItems("A", "B", "C")}
			rr, body := do(t, newTestRouter(rec, nil, nil), "/recommend/"+tc.domain+"?uid=u1")

			if rr.Code != http.StatusOK {
				t.Fatalf("got %d: %s", rr.Code, rr.Body.String())
			}
			if rec.gotUID != "u1" || string(rec.gotDom) != tc.domain {
				t.Errorf("service got (%s, %s)", rec.gotDom, rec.gotUID)
			}
			if body["status"] != "success" || body["message"] != tc.message {
				t.Errorf("unexpected status/message: %v", body)
			}
			if body[tc.count] != float64(3) {
				t.Errorf("%s = %v", tc.count, body[tc.count])
			}
			list, ok := body[tc.list].([]any)
			if !ok || len(list) != 3 {
				t.Fatalf("%s = %v", tc.list, body[tc.list])
			}
			first, _ := list[0].(map[string]any)
			if first["Book"] != "A" || first["coverUrl"] != "https://img/A" {
				t.Errorf("first item not flattened: %v", first)
			}
		})
	}
}

func TestRecommend_ParamErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing uid", "/recommend/books", http.StatusBadRequest},
		{"empty uid", "/recommend/books?uid=", http.StatusBadRequest},
		{"too long uid", "/recommend/books?uid=" + strings.Repeat("x", 129), http.StatusBadRequest},
		{"unknown domain", "/recommend/music?uid=u1", http.StatusNotFound},
		{"stress is not a recommendation", "/recommend/stress?uid=u1", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &mockRecommender{}
			rr, body := do(t, newTestRouter(rec, nil, nil), tc.target)

			if rr.Code != tc.want {
				t.Fatalf("got %d, want %d", rr.Code, tc.want)
			}
			if body["status"] != "failure" {
				t.Errorf("status: %v", body["status"])
			}
			if rec.calls != 0 {
				t.Error("service must not be called")
			}
		})
	}
}

func TestRecommend_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		message string
	}{
		{"user not found", fmt.Errorf("user: %w", domain.ErrUserNotFound), http.StatusNotFound, msgUserNotFound},
		{"survey missing", fmt.Errorf("get survey: %w", domain.ErrSurveyNotFound), http.StatusInternalServerError, msgSurveyNotFound},
		{"unknown domain", domain.ErrUnknownDomain, http.StatusNotFound, msgUnknownDomain},
		{"auth", fmt.Errorf("token: %w", domain.ErrAuth), http.StatusBadGateway, msgRecommendFailed},
		{"transport", fmt.Errorf("call: %w", domain.ErrTransport), http.StatusBadGateway, msgRecommendFailed},
		{"model", domain.NewModelError(domain.Books, 500, "boom"), http.StatusBadGateway, msgRecommendFailed},
		{"unexpected", errors.New("store exploded"), http.StatusInternalServerError, msgRecommendFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &mockRecommender{err: tc.err}
			rr, body := do(t, newTestRouter(rec, nil, nil), "/recommend/books?uid=u1")

			if rr.Code != tc.want {
				t.Fatalf("got %d, want %d", rr.Code, tc.want)
			}
			if body["status"] != "failure" || body["message"] != tc.message {
				t.Errorf("unexpected body: %v", body)
			}
		})
	}
}

func TestRecommend_UpstreamBodyNotLeaked(t *testing.T) {
	rec := &mockRecommender{err: domain.NewModelError(domain.Books, 500, "secret stack trace")}
	rr, _ := do(t, newTestRouter(rec, nil, nil), "/recommend/books?uid=u1")

	if strings.Contains(rr.Body.String(), "secret stack trace") {
		t.Errorf("upstream body leaked: %s", rr.Body.String())
	}
}

// --- Stress ---

func TestPredictStress(t *testing.T) {
	st := &mockStress{prediction: 2.5}
	rr, body := do(t, newTestRouter(nil, st, nil), "/predict/stress?uid=u1")

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}
	if body["message"] != "stress prediction successful" || body["prediction"] != 2.5 {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestPredictStress_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"missing uid", "/predict/stress", nil, http.StatusBadRequest},
		{"user not found", "/predict/stress?uid=u1", domain.ErrUserNotFound, http.StatusNotFound},
		{"survey missing", "/predict/stress?uid=u1", domain.ErrSurveyNotFound, http.StatusInternalServerError},
		{"model down", "/predict/stress?uid=u1", domain.ErrTransport, http.StatusBadGateway},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, _ := do(t, newTestRouter(nil, &mockStress{err: tc.err}, nil), tc.target)
			if rr.Code != tc.want {
				t.Errorf("got %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

// --- Router ---

func TestRouter_RequestIDAndNotFound(t *testing.T) {
	rr, body := do(t, newTestRouter(nil, nil, nil), "/nope")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d", rr.Code)
	}
	if body["status"] != "failure" {
		t.Errorf("unexpected body: %v", body)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	rec := &panickingRecommender{}
	h := NewRouter(NewServer(rec, &mockStress{}, &mockHealth{}, zap.NewNop()), nil, zap.NewNop())

	rr, body := do(t, h, "/recommend/books?uid=u1")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", rr.Code)
	}
	if body["message"] != msgInternal {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRouter_AuthApplied(t *testing.T) {
	h := NewRouter(NewServer(&mockRecommender{}, &mockStress{}, &mockHealth{}, nil), []string{"k"}, zap.NewNop())

	rr, _ := do(t, h, "/recommend/books?uid=u1")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rr.Code)
	}
	rr, _ = do(t, h, "/check")
	if rr.Code != http.StatusOK {
		t.Errorf("check: got %d, want 200", rr.Code)
	}
}

type panickingRecommender struct{}

func (panickingRecommender) Recommend(context.Context, domain.Domain, string) (domain.RecommendationList, error) {
	panic("boom")
}
