package employeeshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nwfpay/internal/domain/payroll"
	"nwfpay/internal/transport/http/api"
	"nwfpay/internal/transport/http/middleware"
	"nwfpay/internal/transport/http/shared"
)

type Handler struct {
	Store payroll.StoreAPI
}

func NewHandler(store payroll.StoreAPI) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/{employeeID}/withholding", h.handleUpdateWithholding)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		slog.Error("list employees failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

type employeePayload struct {
	FirstName               string   `json:"firstName"`
	LastName                string   `json:"lastName"`
	Email                   string   `json:"email"`
	Phone                   string   `json:"phone"`
	Address                 string   `json:"address"`
	State                   string   `json:"state"`
	BankAccount             string   `json:"bankAccount"`
	HourlyRate              float64  `json:"hourlyRate"`
	FederalWithholdingRate  *float64 `json:"federalWithholdingRate"`
	StateWithholdingRate    *float64 `json:"stateWithholdingRate"`
	ExtraWithholdingFederal float64  `json:"extraWithholdingFederal"`
	ExtraWithholdingState   float64  `json:"extraWithholdingState"`
	ExemptFederal           bool     `json:"exemptFederal"`
	ExemptState             bool     `json:"exemptState"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.NonNegative("hourlyRate", payload.HourlyRate)
	if v.Respond(w, requestID) {
		return
	}

	id, err := h.Store.CreateEmployee(r.Context(), payroll.Employee{
		FirstName:               payload.FirstName,
		LastName:                payload.LastName,
		Email:                   payload.Email,
		Phone:                   payload.Phone,
		Address:                 payload.Address,
		State:                   payload.State,
		BankAccount:             payload.BankAccount,
		HourlyRate:              payload.HourlyRate,
		FederalWithholdingRate:  payload.FederalWithholdingRate,
		StateWithholdingRate:    payload.StateWithholdingRate,
		ExtraWithholdingFederal: payload.ExtraWithholdingFederal,
		ExtraWithholdingState:   payload.ExtraWithholdingState,
		ExemptFederal:           payload.ExemptFederal,
		ExemptState:             payload.ExemptState,
	})
	if err != nil {
		slog.Error("create employee failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not create employee", requestID)
		return
	}
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdateWithholding(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	var payload payroll.Withholding
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", requestID)
		return
	}

	err := h.Store.UpdateWithholding(r.Context(), employeeID, payload)
	if errors.Is(err, payroll.ErrEmployeeNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		slog.Error("update withholding failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal", "could not update withholding", requestID)
		return
	}
	api.Success(w, map[string]string{"id": employeeID}, requestID)
}
