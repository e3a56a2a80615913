package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/TFMV/TextClassifier/internal/config"
	"github.com/TFMV/TextClassifier/pkg/classifier"
	"github.com/TFMV/TextClassifier/pkg/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, st store.Store) *gin.Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(classifier.New(nil), st, "intents", PredictDefaults{
		MaxMatches:        classifier.DefaultMaxMatches,
		MinimumConfidence: classifier.DefaultMinimumConfidence,
	}, logger)
	return NewRouter(svc, logger)
}

func do(t *testing.T, router http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, resp
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t, nil)
	code, resp := do(t, router, http.MethodGet, "/health", "")
	if code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", code)
	}
	if resp["status"] != "OK" {
		t.Errorf("status = %v, want OK", resp["status"])
	}
}

func TestTrainAndPredict(t *testing.T) {
	router := newTestRouter(t, nil)

	code, resp := do(t, router, http.MethodPost, "/train", `{"input":["hello world","good morning"],"label":"greeting"}`)
	if code != http.StatusOK {
		t.Fatalf("POST /train status = %d, body %v", code, resp)
	}
	if resp["vocabulary_size"] != float64(4) {
		t.Errorf("vocabulary_size = %v, want 4", resp["vocabulary_size"])
	}
	if code, resp := do(t, router, http.MethodPost, "/train", `{"input":["see you later"],"label":"farewell"}`); code != http.StatusOK {
		t.Fatalf("POST /train status = %d, body %v", code, resp)
	}

	code, resp = do(t, router, http.MethodPost, "/predict", `{"input":"hello there world"}`)
	if code != http.StatusOK {
		t.Fatalf("POST /predict status = %d, body %v", code, resp)
	}
	predictions, ok := resp["predictions"].([]any)
	if !ok || len(predictions) != 1 {
		t.Fatalf("predictions = %v, want one prediction", resp["predictions"])
	}
	if label := predictions[0].(map[string]any)["label"]; label != "greeting" {
		t.Errorf("label = %v, want greeting", label)
	}

	code, resp = do(t, router, http.MethodPost, "/predict", `{"input":"hello","max_matches":5,"minimum_confidence":0}`)
	if code != http.StatusOK {
		t.Fatalf("POST /predict status = %d, body %v", code, resp)
	}
	if predictions := resp["predictions"].([]any); len(predictions) != 2 {
		t.Errorf("predictions = %v, want both labels", predictions)
	}
}

func TestBadRequests(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"Malformed train body", http.MethodPost, "/train", `{"input":`, http.StatusBadRequest},
		{"Train without input", http.MethodPost, "/train", `{"label":"x"}`, http.StatusBadRequest},
		{"Confidence above 1", http.MethodPost, "/predict", `{"input":"","minimum_confidence":1.5}`, http.StatusBadRequest},
		{"Negative max matches", http.MethodPost, "/predict", `{"input":"hi","max_matches":-1}`, http.StatusBadRequest},
		{"Invalid snapshot range", http.MethodPut, "/model", `{"nGramMin":3,"nGramMax":1}`, http.StatusBadRequest},
		{"Invalid snapshot vocabulary", http.MethodPut, "/model", `{"vocabulary":true}`, http.StatusBadRequest},
		{"Save without store", http.MethodPost, "/model/save", "", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, router, tt.method, tt.path, tt.body)
			if code != tt.status {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, code, tt.status)
			}
			if _, ok := resp["error"]; !ok {
				t.Errorf("response %v has no error field", resp)
			}
		})
	}
}

func TestModelRoundTrip(t *testing.T) {
	router := newTestRouter(t, nil)

	snapshot := `{"nGramMin":1,"nGramMax":2,"vocabulary":false,"data":{"weather":{"rain":2,"rain today":1,"today":1}}}`
	code, resp := do(t, router, http.MethodPut, "/model", snapshot)
	if code != http.StatusOK {
		t.Fatalf("PUT /model status = %d, body %v", code, resp)
	}

	code, resp = do(t, router, http.MethodGet, "/model", "")
	if code != http.StatusOK {
		t.Fatalf("GET /model status = %d", code)
	}
	if resp["vocabulary"] != false {
		t.Errorf("vocabulary = %v, want false", resp["vocabulary"])
	}
	if resp["nGramMax"] != float64(2) {
		t.Errorf("nGramMax = %v, want 2", resp["nGramMax"])
	}

	code, resp = do(t, router, http.MethodPost, "/predict", `{"input":"rain today"}`)
	if code != http.StatusOK {
		t.Fatalf("POST /predict status = %d", code)
	}
	if predictions := resp["predictions"].([]any); len(predictions) != 1 {
		t.Errorf("predictions = %v, want weather", predictions)
	}
}

func TestSaveAndLoad(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir(), config.FormatJSON)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	router := newTestRouter(t, st)

	if code, resp := do(t, router, http.MethodPost, "/model/load", ""); code != http.StatusNotFound {
		t.Errorf("POST /model/load before save status = %d, body %v", code, resp)
	}

	if code, _ := do(t, router, http.MethodPost, "/train", `{"input":["hello"],"label":"greeting"}`); code != http.StatusOK {
		t.Fatalf("POST /train status = %d", code)
	}
	code, saved := do(t, router, http.MethodPost, "/model/save", "")
	if code != http.StatusOK {
		t.Fatalf("POST /model/save status = %d, body %v", code, saved)
	}
	if saved["name"] != "intents" || saved["revision"] == "" {
		t.Errorf("save response = %v", saved)
	}

	if code, _ := do(t, router, http.MethodPut, "/model", `{}`); code != http.StatusOK {
		t.Fatalf("PUT /model status = %d", code)
	}
	code, loaded := do(t, router, http.MethodPost, "/model/load", "")
	if code != http.StatusOK {
		t.Fatalf("POST /model/load status = %d, body %v", code, loaded)
	}
	if loaded["revision"] != saved["revision"] {
		t.Errorf("loaded revision = %v, want %v", loaded["revision"], saved["revision"])
	}

	_, model := do(t, router, http.MethodGet, "/model", "")
	if data, _ := model["data"].(map[string]any); data["greeting"] == nil {
		t.Errorf("reloaded model = %v, want greeting data", model)
	}

	code, revs := do(t, router, http.MethodGet, "/model/revisions", "")
	if code != http.StatusOK {
		t.Fatalf("GET /model/revisions status = %d", code)
	}
	if list := revs["revisions"].([]any); len(list) != 1 {
		t.Errorf("revisions = %v, want 1", list)
	}
}
