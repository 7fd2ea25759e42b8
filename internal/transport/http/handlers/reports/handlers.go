package reportshandler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nwfpay/internal/domain/payroll"
	"nwfpay/internal/domain/reports"
	"nwfpay/internal/transport/http/api"
	"nwfpay/internal/transport/http/middleware"
	"nwfpay/internal/transport/http/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Store payroll.StoreAPI
}

func NewHandler(store payroll.StoreAPI) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/register", h.handleRegister)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	from, _ := v.Date("from", r.URL.Query().Get("from"))
	to, _ := v.Date("to", r.URL.Query().Get("to"))
	if v.Respond(w, requestID) {
		return
	}
	if to.Before(from) {
		api.Fail(w, http.StatusBadRequest, "bad_request", "to must not be before from", requestID)
		return
	}

	rows, err := h.Store.RegisterRows(r.Context(), from, to)
	if err != nil {
		slog.Error("register query failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not build register", requestID)
		return
	}
	workbook, err := reports.BuildRegister(rows)
	if err != nil {
		slog.Error("register build failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not build register", requestID)
		return
	}

	filename := fmt.Sprintf("payroll_register_%s_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	api.Binary(w, xlsxContentType, filename, workbook)
}
