package payrollhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"nwfpay/internal/domain/payroll"
	"nwfpay/internal/transport/http/api"
	"nwfpay/internal/transport/http/middleware"
	"nwfpay/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/runs", h.handleRunPayroll)
	})
	r.Get("/employees/{employeeID}/runs", h.handleListRuns)
	r.Get("/paystubs/{paystubID}/download", h.handleDownload)
}

type runPayload struct {
	EmployeeID  string  `json:"employeeId"`
	PeriodStart string  `json:"periodStart"`
	PeriodEnd   string  `json:"periodEnd"`
	PayDate     string  `json:"payDate"`
	Hours       float64 `json:"hours"`
	Rate        float64 `json:"rate"`
	Format      string  `json:"format"`
	EmailTo     string  `json:"emailTo"`
}

func (h *Handler) handleRunPayroll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	start, startOK := v.Date("periodStart", payload.PeriodStart)
	end, endOK := v.Date("periodEnd", payload.PeriodEnd)
	if startOK && endOK && end.Before(start) {
		v.Add("periodEnd", "must not be before periodStart")
	}
	v.NonNegative("hours", payload.Hours)
	v.NonNegative("rate", payload.Rate)
	var payDate time.Time
	if payload.PayDate != "" {
		payDate, _ = v.Date("payDate", payload.PayDate)
	}
	if v.Respond(w, requestID) {
		return
	}

	result, err := h.Service.RunPayroll(r.Context(), payroll.RunRequest{
		EmployeeID:  payload.EmployeeID,
		PeriodStart: start,
		PeriodEnd:   end,
		PayDate:     payDate,
		Hours:       payload.Hours,
		Rate:        payload.Rate,
		Format:      payload.Format,
		EmailTo:     payload.EmailTo,
	})
	switch {
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	case errors.Is(err, payroll.ErrUnknownFormat):
		api.Fail(w, http.StatusBadRequest, "bad_request", "unknown paystub format", requestID)
		return
	case errors.Is(err, payroll.ErrPayDateOutsidePeriod):
		api.Fail(w, http.StatusBadRequest, "bad_request", "pay date must fall within the pay period", requestID)
		return
	case err != nil:
		slog.Error("payroll run failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "payroll run failed", requestID)
		return
	}
	api.Created(w, result, requestID)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "bad_request", "year must be a number", requestID)
			return
		}
		year = parsed
	}

	runs, err := h.Service.RunsForYear(r.Context(), employeeID, year)
	if errors.Is(err, payroll.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		slog.Error("list runs failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not list payroll runs", requestID)
		return
	}
	api.Success(w, runs, requestID)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	paystubID := chi.URLParam(r, "paystubID")

	data, filename, contentType, err := h.Service.Artifact(r.Context(), paystubID)
	switch {
	case errors.Is(err, payroll.ErrPaystubNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "paystub not found", requestID)
		return
	case errors.Is(err, payroll.ErrNoArtifact):
		api.Fail(w, http.StatusConflict, "no_artifact", "paystub has no rendered artifact", requestID)
		return
	case err != nil:
		slog.Error("paystub download failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not load paystub", requestID)
		return
	}
	api.Binary(w, contentType, filename, data)
}

// HandleVerify resolves a verification code to its paystub summary. The
// route is public; it exposes no financial amounts.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	code := chi.URLParam(r, "code")

	stub, err := h.Service.Verify(r.Context(), code)
	if errors.Is(err, payroll.ErrPaystubNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "no paystub matches this verification code", requestID)
		return
	}
	if err != nil {
		slog.Error("verification lookup failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "verification failed", requestID)
		return
	}
	api.Success(w, map[string]any{
		"paystubId": stub.ID,
		"payDate":   stub.PayDate.Format("2006-01-02"),
		"verified":  true,
	}, requestID)
}
