package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/haojie06/venice-image-cli/internal/model"
	"github.com/haojie06/venice-image-cli/internal/venice"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newUpstream returns an httptest server standing in for the Venice API.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"venice-sd35","model_spec":{"traits":["default"]}}]}`))
	})
	mux.HandleFunc("/image/generate", func(w http.ResponseWriter, r *http.Request) {
		var generation model.GenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&generation); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if generation.Model == "broken-model" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"model not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"img-1","images":["aGVsbG8="],"timing":{"total":1500}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestRouter(t *testing.T, facadeKey string) *gin.Engine {
	t.Helper()
	upstream := newUpstream(t)
	client := venice.NewClient("test-key", venice.WithBaseURL(upstream.URL))
	return InitRouter(facadeKey, client)
}

func TestGenerateEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	body := `{"prompt":"a cat in space","aspect_ratio":"square"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/image/generate", strings.NewReader(body))
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	var resp model.GenerationHTTPResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "completed" {
		t.Errorf("status = %q, want completed", resp.Status)
	}
	if resp.Id != "img-1" || len(resp.Images) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Timing == nil || resp.Timing.Total != 1500 {
		t.Errorf("timing = %+v", resp.Timing)
	}
}

func TestGenerateEndpointValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing prompt", `{"model":"venice-sd35"}`, "prompt is required"},
		{"aspect ratio with width", `{"prompt":"x","aspect_ratio":"square","width":512}`, "cannot specify both"},
		{"bad aspect ratio", `{"prompt":"x","aspect_ratio":"circle"}`, "invalid aspect ratio"},
		{"bad format", `{"prompt":"x","format":"gif"}`, "invalid format"},
	}

	router := newTestRouter(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/image/generate", strings.NewReader(tt.body))
			router.ServeHTTP(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", recorder.Code)
			}
			var resp model.GenerationHTTPResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Status != "failed" {
				t.Errorf("status = %q, want failed", resp.Status)
			}
			if !strings.Contains(resp.Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", resp.Message, tt.wantMsg)
			}
		})
	}
}

func TestGenerateEndpointUpstreamError(t *testing.T) {
	router := newTestRouter(t, "")

	body := `{"prompt":"a cat","model":"broken-model"}`
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/image/generate", strings.NewReader(body))
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "model not found") {
		t.Errorf("body = %s, want upstream error detail", recorder.Body.String())
	}
}

func TestModelsEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/models", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var list model.ModelList
	if err := json.Unmarshal(recorder.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].Id != "venice-sd35" {
		t.Errorf("unexpected listing: %+v", list)
	}
}

func TestPermissionCheckMiddleware(t *testing.T) {
	router := newTestRouter(t, "facade-secret")

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/models", nil)
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status without key = %d, want 401", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/models", nil)
	request.Header.Set("API-KEY", "facade-secret")
	router.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status with key = %d, want 200", recorder.Code)
	}
}
