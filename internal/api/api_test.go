package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/johnnie2785/comedogenic-tester/internal/catalog"
	"github.com/johnnie2785/comedogenic-tester/internal/domain"
	"github.com/johnnie2785/comedogenic-tester/internal/modifier"
	"github.com/johnnie2785/comedogenic-tester/internal/repository"
	"github.com/johnnie2785/comedogenic-tester/internal/scorer"
)

const testCSV = `name,score,synonyms,category,notes
Water,0,aqua,solvent,
Coconut Oil,4,cocos nucifera oil,occlusive,highly comedogenic
Shea Butter,0,butyrospermum parkii,butter,
Isopropyl Myristate,5,,ester,classic clogger
`

func createTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()

	csvPath := filepath.Join(dir, "catalog.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	store, err := repository.New(domain.RepositoryConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(dir, "comedo-test.db"),
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	engine, err := modifier.NewEngine()
	if err != nil {
		t.Fatalf("failed to create modifier engine: %v", err)
	}

	catalogs := catalog.NewManager(context.Background(), catalog.ManagerConfig{
		Store:   store,
		CSVPath: csvPath,
	})

	sc := scorer.New(catalogs, engine)

	return NewServer(domain.ServerConfig{Host: "127.0.0.1", Port: 0}, catalogs, sc, store, nil, engine, "test")
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := createTestServer(t)

	t.Run("Health", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/health", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["status"] != "healthy" {
			t.Errorf("expected healthy, got %s", body["status"])
		}
		if body["version"] != "test" {
			t.Errorf("expected version test, got %s", body["version"])
		}
	})

	t.Run("Ready", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/ready", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("RequestIDHeader", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/health", nil)
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
	})
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := createTestServer(t)

	t.Run("Success", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/analyze", domain.AnalysisRequest{
			RawText: "Water, Coconut Oil, Shea Butter",
			LeaveOn: true,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body AnalyzeResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Result == nil {
			t.Fatal("expected a result")
		}
		if body.Result.ID == "" {
			t.Error("expected a result ID")
		}
		if len(body.Result.Breakdown) != 3 {
			t.Errorf("expected 3 breakdown rows, got %d", len(body.Result.Breakdown))
		}
		if body.Result.Score <= 0 {
			t.Errorf("expected positive score, got %v", body.Result.Score)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/analyze", domain.AnalysisRequest{RawText: "  ,, ; "})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body AnalyzeResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Result != nil {
			t.Errorf("expected null result, got %+v", body.Result)
		}
		if body.Message != "No ingredients provided." {
			t.Errorf("unexpected message: %q", body.Message)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCatalogEndpoints(t *testing.T) {
	srv := createTestServer(t)

	t.Run("GetCatalog", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/catalog", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Count != 4 {
			t.Errorf("expected 4 entries, got %d", body.Count)
		}
	})

	t.Run("ResolveKnown", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/catalog/resolve?q=Coconut+Oil", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var entry domain.CatalogEntry
		if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if entry.Score != 4 {
			t.Errorf("expected score 4, got %v", entry.Score)
		}
	})

	t.Run("ResolveUnknown", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/catalog/resolve?q=mystery+extract", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var entry domain.CatalogEntry
		if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if entry.Score != 0 || entry.Notes != domain.UnknownNotes {
			t.Errorf("expected synthetic unknown entry, got %+v", entry)
		}
	})

	t.Run("ResolveMissingQuery", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/catalog/resolve", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Reload", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/catalog/reload", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestModifierEndpoints(t *testing.T) {
	srv := createTestServer(t)

	cfg := domain.ModifierConfig{
		ID:         "heavy-baseline",
		Name:       "Heavy Baseline",
		Expression: "baseline > 3.0",
		Factor:     1.05,
		Note:       "Heavy baseline -> +5%",
		Enabled:    true,
	}

	t.Run("Create", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/modifiers", cfg)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("CreateInvalidExpression", func(t *testing.T) {
		bad := cfg
		bad.ID = "bad-rule"
		bad.Expression = "baseline +"

		rec := doJSON(t, srv, http.MethodPost, "/modifiers", bad)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("Get", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/modifiers/heavy-baseline", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var got domain.ModifierConfig
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got.Expression != cfg.Expression {
			t.Errorf("expected %q, got %q", cfg.Expression, got.Expression)
		}
	})

	t.Run("GetNotFound", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/modifiers/missing", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("List", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/modifiers", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Count != 1 {
			t.Errorf("expected 1 loaded rule, got %d", body.Count)
		}
	})

	t.Run("Reload", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/modifiers/reload", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
