package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pipelat/pipelat/logger"
	"github.com/pipelat/pipelat/resource"
	"github.com/pipelat/pipelat/server"
	"github.com/pipelat/pipelat/stages"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resources := resource.NewRegistry()
	gpu := resource.MustNew(resource.Spec{
		Name:         "gpu0",
		Kind:         resource.KindGPU,
		Flops:        1e12,
		Bandwidth:    1e11,
		NetworkSpeed: 1e10,
		TimeInDriver: 5,
	})
	if err := resources.Register(gpu); err != nil {
		t.Fatalf("register resource: %v", err)
	}

	log := logger.NewDefault("test")
	svc := server.NewEstimateService(resources, stages.Builtin(), nil, log)

	engine := gin.New()
	svc.RegisterRoutes(engine)
	return engine
}

const estimateBody = `{
	"name": "wfs-chain",
	"components": [
		{"name": "cam", "type": "camera", "resource": "gpu0",
		 "params": {"readout": 100},
		 "groups": 4, "total": 65536},
		{"name": "cal", "type": "calibration", "resource": "gpu0",
		 "groups": 4, "total": 65536}
	],
	"connections": [{"start": "cam", "end": "cal"}]
}`

func TestEstimateEndpoint(t *testing.T) {
	engine := testEngine(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/estimate", strings.NewReader(estimateBody))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			Summary struct {
				Pipeline     string   `json:"pipeline"`
				RunID        string   `json:"run_id"`
				TotalLatency float64  `json:"total_latency_us"`
				CriticalPath []string `json:"critical_path"`
			} `json:"summary"`
			Results map[string][]struct {
				Start float64 `json:"start"`
				End   float64 `json:"end"`
			} `json:"results"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if resp.Data.Summary.Pipeline != "wfs-chain" {
		t.Errorf("expected pipeline wfs-chain, got %s", resp.Data.Summary.Pipeline)
	}
	if resp.Data.Summary.RunID == "" {
		t.Error("expected a run ID")
	}
	if resp.Data.Summary.TotalLatency <= 0 {
		t.Errorf("expected positive total latency, got %f", resp.Data.Summary.TotalLatency)
	}
	if len(resp.Data.Summary.CriticalPath) != 2 {
		t.Errorf("expected 2 components on critical path, got %v", resp.Data.Summary.CriticalPath)
	}
	if len(resp.Data.Results["cam"]) != 4 || len(resp.Data.Results["cal"]) != 4 {
		t.Errorf("expected 4 spans per component, got cam=%d cal=%d",
			len(resp.Data.Results["cam"]), len(resp.Data.Results["cal"]))
	}
}

func TestEstimateMalformedJSON(t *testing.T) {
	engine := testEngine(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/estimate", strings.NewReader("{not json"))
	engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error response is not valid JSON: %v", err)
	}
	if resp.Error.Code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT, got %s", resp.Error.Code)
	}
}

func TestEstimateUnknownProfile(t *testing.T) {
	engine := testEngine(t)

	body := `{
		"name": "p",
		"components": [
			{"name": "cam", "type": "camera", "resource": "no-such-gpu",
			 "groups": 2, "total": 1024}
		]
	}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/estimate", strings.NewReader(body))
	engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestEstimateCyclicDefinition(t *testing.T) {
	engine := testEngine(t)

	body := `{
		"name": "loop",
		"components": [
			{"name": "a", "type": "camera", "resource": "gpu0",
			 "groups": 2, "total": 1024},
			{"name": "b", "type": "calibration", "resource": "gpu0",
			 "groups": 2, "total": 1024}
		],
		"connections": [
			{"start": "a", "end": "b"},
			{"start": "b", "end": "a"}
		]
	}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/estimate", strings.NewReader(body))
	engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error response is not valid JSON: %v", err)
	}
	if resp.Error.Code != "CYCLIC_DEPENDENCY" {
		t.Errorf("expected CYCLIC_DEPENDENCY, got %s", resp.Error.Code)
	}
}

func TestListProfiles(t *testing.T) {
	engine := testEngine(t)

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/profiles", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "gpu0" {
		t.Errorf("expected single profile gpu0, got %+v", resp.Data)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	engine := testEngine(t)

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/profiles/missing", http.NoBody))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestListStages(t *testing.T) {
	engine := testEngine(t)

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/stages", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Data struct {
			Stages []string `json:"stages"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	found := false
	for _, name := range resp.Data.Stages {
		if name == "centroider" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected centroider among stages, got %v", resp.Data.Stages)
	}
}
