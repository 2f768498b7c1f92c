package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/iwvelando/solar-calculator/internal/calculator"
	"github.com/iwvelando/solar-calculator/pkg/constants"
	"github.com/iwvelando/solar-calculator/pkg/loans"
	"github.com/iwvelando/solar-calculator/pkg/output"
	"github.com/iwvelando/solar-calculator/pkg/projection"
	"github.com/iwvelando/solar-calculator/pkg/solar"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	params        solar.Parameters
}

// NewHandler constructs the HTTP handler that serves the calculation API.
// params are used for every request that does not carry its own overrides.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, params solar.Parameters) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, params: params}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Get("/parameters", h.handleParameters)
		r.Get("/version", h.handleVersion)
	})

	return r
}

// requestID tags every request and response with an X-Request-ID, keeping a
// caller-supplied value when present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(constants.RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(constants.RequestIDHeader, id)
		}
		w.Header().Set(constants.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.logger.Info("handled request",
			zap.String("op", "server.requestLogger"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", r.Header.Get(constants.RequestIDHeader)),
		)
	})
}

// calculateRequest is a calculator.Input with optional parameter overrides.
// Overrides are applied field by field on top of the server's parameters.
type calculateRequest struct {
	calculator.Input
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

type calculateResponse struct {
	*calculator.Result
	Duration string `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	// Absent fields keep their defaults; explicit values, zero included, win.
	req := calculateRequest{Input: calculator.DefaultInput(0)}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	params, err := h.resolveParameters(req.Parameters)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := calculator.Calculate(h.logger, req.Input, params)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error(), op)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), constants.OutputFormatCSV) {
		var buf bytes.Buffer
		output.CsvFormat(&buf, result)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Result:   result,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) resolveParameters(raw json.RawMessage) (solar.Parameters, error) {
	params := h.params
	params.SubsidyTiers = append([]solar.SubsidyTier(nil), h.params.SubsidyTiers...)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return params, nil
	}

	if err := json.Unmarshal(trimmed, &params); err != nil {
		return solar.Parameters{}, fmt.Errorf("invalid parameters payload: %v", err)
	}
	if err := params.Validate(); err != nil {
		return solar.Parameters{}, err
	}
	return params, nil
}

// statusForError maps calculation errors caused by the request to 400.
func statusForError(err error) int {
	for _, target := range []error{
		solar.ErrInvalidBill,
		solar.ErrInvalidParameters,
		loans.ErrInvalidTenure,
		loans.ErrInvalidLoan,
		projection.ErrInvalidHorizon,
		calculator.ErrUnknownPaymentType,
		calculator.ErrUnknownViewMode,
	} {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (h *handler) handleParameters(w http.ResponseWriter, r *http.Request) {
	if !strings.EqualFold(r.URL.Query().Get("format"), "yaml") {
		h.writeJSON(w, http.StatusOK, h.params)
		return
	}

	data, err := yaml.Marshal(h.params)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode parameters: %v", err),
			"server.handleParameters")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes before writing the status so an unencodable payload
// becomes a 500 instead of a truncated success.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
