package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"sharptoken/internal/charts"
	"sharptoken/internal/core"
	"sharptoken/internal/services"
	"sharptoken/internal/storage"
	"sharptoken/internal/workbook/memory"
)

func testService(t *testing.T, store *storage.SnapshotRepository) *services.ReportService {
	t.Helper()
	wb := memory.New()
	wb.SetTable(core.TokensSpec.Sheet, core.Table{
		Fields: []string{"Date", "Airdrop", "Total"},
		Rows:   [][]string{{"01-10-2025", "10", "10"}},
	})
	wb.SetTable(core.WalletsSpec.Sheet, core.Table{
		Fields: []string{"Date", "Android", "iOS", "Web"},
		Rows:   [][]string{{"2025-01-05", "3", "1", "0"}},
	})
	wb.SetTable(core.ReferralsSpec.Sheet, core.Table{
		Fields: []string{"Date", "Twitter"},
		Rows:   [][]string{{"2025-01-02", "4"}},
	})
	wb.SetTable(core.FeesSpec.Sheet, core.Table{
		Fields: []string{"Date", "TxnFee(POL)"},
		Rows:   [][]string{{"2025-01-03", "1.5"}},
	})
	return services.NewReportService(wb, store, nil, nil)
}

func testServer(t *testing.T, store *storage.SnapshotRepository) *Server {
	t.Helper()
	svc := testService(t, store)
	dashboard, err := svc.BuildDashboard(context.Background())
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	return NewServer(":0", dashboard, svc)
}

func TestIndexPage(t *testing.T) {
	s := testServer(t, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Sharp Token Dashboard") || !strings.Contains(body, charts.MonthlyFeeTrend) {
		t.Fatalf("unexpected index body: %s", body)
	}

	rec = httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", rec.Code)
	}
}

func TestChartsEndpoint(t *testing.T) {
	s := testServer(t, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/charts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d charts.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(d.Charts) != 8 {
		t.Fatalf("charts = %d, want 8", len(d.Charts))
	}

	rec = httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/charts", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d", rec.Code)
	}
}

func TestSingleChartEndpoint(t *testing.T) {
	s := testServer(t, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/charts/"+charts.WalletPlatformBreakdown, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var chart charts.ChartDataset
	if err := json.Unmarshal(rec.Body.Bytes(), &chart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if chart.Name != charts.WalletPlatformBreakdown || chart.GrandTotal != 4 {
		t.Fatalf("chart = %+v", chart)
	}

	rec = httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/charts/bogus", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown chart status = %d", rec.Code)
	}
}

func TestSnapshotsEndpoint(t *testing.T) {
	// Without a store the endpoint degrades to 503.
	s := testServer(t, nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/snapshots", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("no-store status = %d", rec.Code)
	}

	store, err := storage.NewSnapshotRepository(filepath.Join(t.TempDir(), "snap.db"))
	if err != nil {
		t.Fatalf("NewSnapshotRepository: %v", err)
	}
	defer store.Close()

	svc := testService(t, store)
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	dashboard, err := svc.BuildDashboard(context.Background())
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	s = NewServer(":0", dashboard, svc)

	rec = httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/snapshots?limit=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var snaps []storage.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snaps); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snaps) != 1 || len(snaps[0].Domains) != 4 {
		t.Fatalf("snapshots = %+v", snaps)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := testServer(t, nil)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		s.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}
}
