package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/solar"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newTestHandler() http.Handler {
	return NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test", solar.DefaultParameters())
}

func postCalculate(t *testing.T, handler http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

type decodedResult struct {
	Sizing struct {
		RequiredCapacityKw float64 `json:"requiredCapacityKw"`
	} `json:"sizing"`
	Cost struct {
		SubsidyAmount          float64 `json:"subsidyAmount"`
		CostAfterSubsidyAmount float64 `json:"costAfterSubsidyAmount"`
	} `json:"cost"`
	BreakEven *struct {
		DaysToBreakEven int `json:"daysToBreakEven"`
	} `json:"breakEven"`
	BreakEvenNote string `json:"breakEvenNote"`
	Loan          *struct {
		PrincipalAmount float64 `json:"principalAmount"`
	} `json:"loan"`
	Yearly        []json.RawMessage `json:"yearly"`
	Daily         []json.RawMessage `json:"daily"`
	BreakEvenYear int               `json:"breakEvenYear"`
	Duration      string            `json:"duration"`
}

func TestHandleCalculateSuccess(t *testing.T) {
	rr := postCalculate(t, newTestHandler(), "/api/calculate", `{"monthlyBillAmount": 3000}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp decodedResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Sizing.RequiredCapacityKw != 3 {
		t.Fatalf("expected 3 kW, got %v", resp.Sizing.RequiredCapacityKw)
	}
	if resp.Cost.CostAfterSubsidyAmount != 192000 {
		t.Fatalf("expected cost after subsidy 192000, got %v", resp.Cost.CostAfterSubsidyAmount)
	}
	if resp.BreakEven == nil || resp.BreakEven.DaysToBreakEven != 2017 {
		t.Fatalf("expected break-even after 2017 days, got %+v", resp.BreakEven)
	}
	if len(resp.Yearly) != 10 {
		t.Fatalf("expected 10 yearly points, got %d", len(resp.Yearly))
	}
	if resp.BreakEvenYear != 6 {
		t.Fatalf("expected break-even year 6, got %d", resp.BreakEvenYear)
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
}

func TestHandleCalculateEMIAllViews(t *testing.T) {
	body := `{"monthlyBillAmount": 3000, "paymentType": "emi", "interestRatePercent": 10, "tenureYears": 5, "viewMode": "all", "daysHorizon": 30}`
	rr := postCalculate(t, newTestHandler(), "/api/calculate", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp decodedResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Loan == nil || resp.Loan.PrincipalAmount != 192000 {
		t.Fatalf("expected loan on 192000, got %+v", resp.Loan)
	}
	if len(resp.Daily) != 30 {
		t.Fatalf("expected 30 daily points, got %d", len(resp.Daily))
	}
}

func TestHandleCalculateOmittedFieldsUseDefaults(t *testing.T) {
	rr := postCalculate(t, newTestHandler(), "/api/calculate", `{"monthlyBillAmount": 3000, "paymentType": "emi"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Input struct {
			InterestRatePercent float64 `json:"interestRatePercent"`
			TenureYears         int     `json:"tenureYears"`
			YearsHorizon        int     `json:"yearsHorizon"`
		} `json:"input"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Input.InterestRatePercent != constants.DefaultInterestRatePercent ||
		resp.Input.TenureYears != constants.DefaultTenureYears ||
		resp.Input.YearsHorizon != constants.DefaultYearsHorizon {
		t.Fatalf("defaults not applied to omitted fields: %+v", resp.Input)
	}
}

func TestWriteJSONUnencodablePayload(t *testing.T) {
	h := &handler{logger: zap.NewNop()}
	rr := httptest.NewRecorder()

	h.writeJSON(rr, http.StatusOK, map[string]float64{"value": math.Inf(1)})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("expected error message in response")
	}
}

func TestHandleCalculateParameterOverrides(t *testing.T) {
	body := `{"monthlyBillAmount": 3000, "parameters": {"subsidyTiers": [{"maxCapacityKw": 1, "amount": 5000}], "subsidyCap": 10000}}`
	rr := postCalculate(t, newTestHandler(), "/api/calculate", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp decodedResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Cost.SubsidyAmount != 10000 {
		t.Fatalf("expected overridden subsidy 10000, got %v", resp.Cost.SubsidyAmount)
	}
	if resp.Sizing.RequiredCapacityKw != 3 {
		t.Fatalf("unset parameters should keep server defaults, got %v kW", resp.Sizing.RequiredCapacityKw)
	}
}

func TestHandleCalculateOverridesDoNotLeak(t *testing.T) {
	handler := newTestHandler()

	rr := postCalculate(t, handler, "/api/calculate", `{"monthlyBillAmount": 3000, "parameters": {"subsidyTiers": [{"maxCapacityKw": 10, "amount": 1}]}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = postCalculate(t, handler, "/api/calculate", `{"monthlyBillAmount": 3000}`)
	var resp decodedResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Cost.SubsidyAmount != 78000 {
		t.Fatalf("expected default subsidy 78000 after an override request, got %v", resp.Cost.SubsidyAmount)
	}
}

func TestHandleCalculateNoBreakEven(t *testing.T) {
	body := `{"monthlyBillAmount": 3000, "parameters": {"variableCostPerUnit": 9}}`
	rr := postCalculate(t, newTestHandler(), "/api/calculate", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp decodedResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.BreakEven != nil {
		t.Fatalf("expected null break-even, got %+v", resp.BreakEven)
	}
	if resp.BreakEvenNote == "" {
		t.Fatal("expected a break-even note")
	}
}

func TestHandleCalculateCSV(t *testing.T) {
	rr := postCalculate(t, newTestHandler(), "/api/calculate?format=csv", `{"monthlyBillAmount": 3000}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected CSV content type, got %s", ct)
	}
	if !strings.Contains(rr.Body.String(), `"required_capacity_kw","3.00"`) {
		t.Fatalf("expected CSV metrics, got %s", rr.Body.String())
	}
}

func TestHandleCalculateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Malformed JSON", `{"monthlyBillAmount": `, http.StatusBadRequest},
		{"Zero bill", `{"monthlyBillAmount": 0}`, http.StatusBadRequest},
		{"Negative bill", `{"monthlyBillAmount": -100}`, http.StatusBadRequest},
		{"Unknown payment type", `{"monthlyBillAmount": 3000, "paymentType": "lease"}`, http.StatusBadRequest},
		{"Unknown view mode", `{"monthlyBillAmount": 3000, "viewMode": "hourly"}`, http.StatusBadRequest},
		{"Negative tenure", `{"monthlyBillAmount": 3000, "paymentType": "emi", "tenureYears": -2}`, http.StatusBadRequest},
		{"Negative horizon", `{"monthlyBillAmount": 3000, "yearsHorizon": -5}`, http.StatusBadRequest},
		{"Explicit zero tenure", `{"monthlyBillAmount": 3000, "paymentType": "emi", "tenureYears": 0}`, http.StatusBadRequest},
		{"Explicit zero horizon", `{"monthlyBillAmount": 3000, "yearsHorizon": 0}`, http.StatusBadRequest},
		{"Overflowing bill", `{"monthlyBillAmount": 1e307}`, http.StatusBadRequest},
		{"Overflowing daily projection", `{"monthlyBillAmount": 1e306, "viewMode": "daily", "daysHorizon": 10000}`, http.StatusBadRequest},
		{"Invalid parameters", `{"monthlyBillAmount": 3000, "parameters": {"unitPrice": 0}}`, http.StatusBadRequest},
		{"Parameters not an object", `{"monthlyBillAmount": 3000, "parameters": [1, 2]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postCalculate(t, newTestHandler(), "/api/calculate", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}

			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp["error"] == "" {
				t.Fatal("expected error message in response")
			}
		})
	}
}

func TestHandleCalculateTooLarge(t *testing.T) {
	handler := NewHandler(zap.NewNop(), 64, "test", solar.DefaultParameters())

	body := `{"monthlyBillAmount": 3000, "viewMode": "` + strings.Repeat("x", 128) + `"}`
	rr := postCalculate(t, handler, "/api/calculate", body)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleCalculateMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/calculate", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleParameters(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/parameters", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var params solar.Parameters
	if err := json.Unmarshal(rr.Body.Bytes(), &params); err != nil {
		t.Fatalf("failed to decode parameters: %v", err)
	}
	if params.UnitPrice != solar.DefaultUnitPrice || len(params.SubsidyTiers) != 3 {
		t.Fatalf("unexpected parameters: %+v", params)
	}
}

func TestHandleParametersYAML(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/parameters?format=yaml", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var params solar.Parameters
	if err := yaml.Unmarshal(rr.Body.Bytes(), &params); err != nil {
		t.Fatalf("failed to decode YAML parameters: %v", err)
	}
	if params.CostPerKw != solar.DefaultCostPerKw {
		t.Fatalf("expected cost per kW %v, got %v", solar.DefaultCostPerKw, params.CostPerKw)
	}
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode version response: %v", err)
	}
	if resp["version"] != "test" {
		t.Fatalf("expected version test, got %q", resp["version"])
	}
}

func TestVersionDefaultsToDev(t *testing.T) {
	handler := NewHandler(nil, 0, "  ", solar.DefaultParameters())

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !bytes.Contains(rr.Body.Bytes(), []byte(`"dev"`)) {
		t.Fatalf("expected dev version, got %s", rr.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	id := rr.Header().Get(constants.RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated UUID request id, got %q", id)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(constants.RequestIDHeader, "caller-id")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get(constants.RequestIDHeader); got != "caller-id" {
		t.Fatalf("expected caller request id to be kept, got %q", got)
	}
}
