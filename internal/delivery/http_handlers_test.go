package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salespulse/internal/domain"
	"salespulse/internal/infrastructure"
	"salespulse/internal/usecase"
	"salespulse/pkg/logger"
	"salespulse/pkg/metrics"

	"github.com/gin-gonic/gin"
)

var testMetrics = metrics.New()

type stubSource struct {
	rows []domain.RawRow
	err  error
}

func (s *stubSource) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	return s.rows, s.err
}

func newTestRouter(t *testing.T, source domain.SheetSource, store domain.SnapshotRepository) *gin.Engine {
	t.Helper()
	log := logger.New("error")

	ingest := usecase.NewIngestService(source, store, usecase.NewNormalizer(log, testMetrics), log, testMetrics, time.Minute)
	analytics := usecase.NewAnalyticsService(store, log, 50000)

	handlers := NewHTTPHandlers(ingest, analytics, log)
	return NewHTTPRouter(handlers, log, testMetrics).SetupRoutes()
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func publishedStore(records ...domain.SaleRecord) domain.SnapshotRepository {
	store := infrastructure.NewSnapshotStore()
	store.Publish(&domain.Snapshot{Records: records, FetchedAt: time.Now()})
	return store
}

func wonToday(agent string, revenue float64) domain.SaleRecord {
	now := time.Now()
	return domain.SaleRecord{
		ID: agent, Agent: agent, Status: domain.StatusWon, Revenue: revenue,
		RegistrationDate: now, ResolutionDate: &now,
	}
}

func TestGetStats(t *testing.T) {
	store := publishedStore(wonToday("Ana", 1000), wonToday("Luis", 2000))
	router := newTestRouter(t, &stubSource{}, store)

	w := doRequest(router, http.MethodGet, "/api/v1/stats?period=month&anchor=registration")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var result usecase.StatsResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(result.Stats) != 2 || result.Stats[0].Agent != "Luis" {
		t.Fatalf("stats = %+v", result.Stats)
	}
	if result.Loading {
		t.Fatal("loading must be false after a publish")
	}
}

func TestGetStatsBadPeriod(t *testing.T) {
	router := newTestRouter(t, &stubSource{}, publishedStore())

	w := doRequest(router, http.MethodGet, "/api/v1/stats?period=fortnight")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetStatsBadDate(t *testing.T) {
	router := newTestRouter(t, &stubSource{}, publishedStore())

	w := doRequest(router, http.MethodGet, "/api/v1/stats?period=custom&from=15-03-2025")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetPodiumAlwaysThreeSlots(t *testing.T) {
	store := publishedStore(wonToday("Ana", 1000))
	router := newTestRouter(t, &stubSource{}, store)

	w := doRequest(router, http.MethodGet, "/api/v1/stats/podium?period=month")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		Podium []domain.CommercialStats `json:"podium"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Podium) != 3 {
		t.Fatalf("podium size = %d", len(body.Podium))
	}
	if body.Podium[0].Agent != "Ana" || body.Podium[1].Agent != domain.PodiumPlaceholder {
		t.Fatalf("podium = %+v", body.Podium)
	}
}

func TestGetFacets(t *testing.T) {
	store := publishedStore(wonToday("Ana", 1000))
	router := newTestRouter(t, &stubSource{}, store)

	w := doRequest(router, http.MethodGet, "/api/v1/sales/facets")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var facets domain.FacetValues
	if err := json.Unmarshal(w.Body.Bytes(), &facets); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(facets.Agents) != 1 || facets.Agents[0] != "Ana" {
		t.Fatalf("facets = %+v", facets)
	}
}

func TestIngestRun(t *testing.T) {
	source := &stubSource{rows: []domain.RawRow{{"ID contacto": "c-1", "Comercial": "Ana"}}}
	store := infrastructure.NewSnapshotStore()
	router := newTestRouter(t, source, store)

	w := doRequest(router, http.MethodPost, "/api/v1/ingest/run")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if store.Current() == nil {
		t.Fatal("manual refresh did not publish")
	}
}

func TestIngestRunFetchFailure(t *testing.T) {
	source := &stubSource{err: errors.New("boom")}
	router := newTestRouter(t, source, infrastructure.NewSnapshotStore())

	w := doRequest(router, http.MethodPost, "/api/v1/ingest/run")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", w.Code)
	}
}
