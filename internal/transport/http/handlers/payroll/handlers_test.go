package payrollhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"nwfpay/internal/domain/payroll"
)

// stubStore embeds the interface so only the methods a test exercises need
// an implementation.
type stubStore struct {
	payroll.StoreAPI
	employees map[string]payroll.Employee
	runs      []payroll.PayrollRun
	stubs     map[string]payroll.Paystub
	attached  map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{
		employees: map[string]payroll.Employee{},
		stubs:     map[string]payroll.Paystub{},
		attached:  map[string]string{},
	}
}

func (s *stubStore) FindEmployeeByID(_ context.Context, id string) (payroll.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return payroll.Employee{}, payroll.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubStore) CreateRunWithPaystub(_ context.Context, run payroll.PayrollRun, stub payroll.Paystub) (payroll.PayrollRun, payroll.Paystub, error) {
	run.ID = "run-1"
	stub.ID = "stub-1"
	stub.PayrollRunID = run.ID
	stub.EmployeeID = run.EmployeeID
	run.PayDate = stub.PayDate
	s.runs = append(s.runs, run)
	s.stubs[stub.ID] = stub
	return run, stub, nil
}

func (s *stubStore) ListRunsForEmployee(_ context.Context, employeeID string, from, to time.Time) ([]payroll.PayrollRun, error) {
	var out []payroll.PayrollRun
	for _, run := range s.runs {
		if run.EmployeeID != employeeID || run.PayDate.Before(from) || run.PayDate.After(to) {
			continue
		}
		out = append(out, run)
	}
	return out, nil
}

func (s *stubStore) AttachArtifact(_ context.Context, paystubID, fileURL string) error {
	s.attached[paystubID] = fileURL
	return nil
}

func (s *stubStore) FindPaystubByVerificationCode(_ context.Context, code string) (payroll.Paystub, error) {
	for _, stub := range s.stubs {
		if stub.VerificationCode == code {
			return stub, nil
		}
	}
	return payroll.Paystub{}, payroll.ErrPaystubNotFound
}

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, _ payroll.RenderData) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type stubCertifier struct{}

func (stubCertifier) Certify(raw []byte) ([]byte, error) { return raw, nil }

func testRouter(t *testing.T, store *stubStore) chi.Router {
	t.Helper()
	svc := payroll.NewService(store,
		map[string]payroll.Renderer{payroll.FormatPDF: stubRenderer{}},
		stubCertifier{}, nil, nil, nil,
		payroll.EmployerBlock{Name: "Northwind Fabrication"}, t.TempDir())
	h := NewHandler(svc)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	r.Get("/verify/{code}", h.HandleVerify)
	return r
}

func seedEmployee(store *stubStore) payroll.Employee {
	emp := payroll.Employee{
		ID:         "emp-1",
		FirstName:  "Ada",
		LastName:   "Nguyen",
		State:      "CA",
		HourlyRate: 25,
	}
	store.employees[emp.ID] = emp
	return emp
}

func TestRunPayrollCreatesRun(t *testing.T) {
	store := newStubStore()
	seedEmployee(store)
	router := testRouter(t, store)

	body := `{"employeeId":"emp-1","periodStart":"2026-06-01","periodEnd":"2026-06-15","hours":80,"rate":25}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Success bool              `json:"success"`
		Data    payroll.RunResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	if got := envelope.Data.Run.GrossPay; got != 2000 {
		t.Fatalf("gross pay = %v, want 2000", got)
	}
	if envelope.Data.Paystub.FileURL == "" {
		t.Fatal("expected an attached artifact path")
	}
	if len(store.runs) != 1 {
		t.Fatalf("stored runs = %d, want 1", len(store.runs))
	}
}

func TestRunPayrollValidation(t *testing.T) {
	store := newStubStore()
	router := testRouter(t, store)

	body := `{"periodStart":"not-a-date","periodEnd":"2026-06-15","hours":-1,"rate":25}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "validation_failed") {
		t.Fatalf("body = %s, want validation_failed", rec.Body.String())
	}
}

func TestRunPayrollUnknownEmployee(t *testing.T) {
	store := newStubStore()
	router := testRouter(t, store)

	body := `{"employeeId":"ghost","periodStart":"2026-06-01","periodEnd":"2026-06-15","hours":80,"rate":25}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRunPayrollUnknownFormat(t *testing.T) {
	store := newStubStore()
	seedEmployee(store)
	router := testRouter(t, store)

	body := `{"employeeId":"emp-1","periodStart":"2026-06-01","periodEnd":"2026-06-15","hours":80,"rate":25,"format":"docx"}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRunPayrollPayDateOutsidePeriod(t *testing.T) {
	store := newStubStore()
	seedEmployee(store)
	router := testRouter(t, store)

	body := `{"employeeId":"emp-1","periodStart":"2026-06-01","periodEnd":"2026-06-15","payDate":"2026-07-01","hours":80,"rate":25}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListRunsFiltersYear(t *testing.T) {
	store := newStubStore()
	seedEmployee(store)
	router := testRouter(t, store)

	for _, payDate := range []string{"2025-12-31", "2026-03-15"} {
		body := `{"employeeId":"emp-1","periodStart":"` + payDate + `","periodEnd":"` + payDate + `","hours":40,"rate":25}`
		req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed run for %s: status = %d", payDate, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/employees/emp-1/runs?year=2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []payroll.PayrollRun `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("runs = %d, want 1", len(envelope.Data))
	}
	if got := envelope.Data[0].PayDate.Year(); got != 2026 {
		t.Fatalf("pay date year = %d, want 2026", got)
	}
}

func TestVerify(t *testing.T) {
	store := newStubStore()
	seedEmployee(store)
	router := testRouter(t, store)

	body := `{"employeeId":"emp-1","periodStart":"2026-06-01","periodEnd":"2026-06-15","hours":80,"rate":25}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed run: status = %d", rec.Code)
	}
	var envelope struct {
		Data payroll.RunResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	code := envelope.Data.Paystub.VerificationCode
	if code == "" {
		t.Fatal("expected a verification code")
	}

	req = httptest.NewRequest(http.MethodGet, "/verify/"+code, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"verified":true`) {
		t.Fatalf("verify body = %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/verify/nope", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown code status = %d, want 404", rec.Code)
	}
}
