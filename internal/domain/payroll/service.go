package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoutil "nwfpay/internal/platform/crypto"
	"nwfpay/internal/platform/metrics"
)

const (
	FormatPDF  = "pdf"
	FormatHTML = "html"

	artifactContentType = "application/pdf"
)

// Renderer turns one paystub's data into PDF bytes. Implementations live in
// the document package; callers pick one by format.
type Renderer interface {
	Render(ctx context.Context, data RenderData) ([]byte, error)
}

// Certifier stamps product-identifying metadata into a rendered artifact.
// A parse failure is terminal: nothing uncertified leaves the system.
type Certifier interface {
	Certify(raw []byte) ([]byte, error)
}

// Attachment is a document handed to the delivery collaborator.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer delivers a paystub. The core has no opinion on transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string, att *Attachment) error
}

type Service struct {
	store       StoreAPI
	renderers   map[string]Renderer
	certifier   Certifier
	mailer      Mailer
	crypto      *cryptoutil.Service
	metrics     *metrics.Collector
	employer    EmployerBlock
	artifactDir string
}

func NewService(store StoreAPI, renderers map[string]Renderer, certifier Certifier,
	mailer Mailer, crypto *cryptoutil.Service, collector *metrics.Collector,
	employer EmployerBlock, artifactDir string) *Service {
	return &Service{
		store:       store,
		renderers:   renderers,
		certifier:   certifier,
		mailer:      mailer,
		crypto:      crypto,
		metrics:     collector,
		employer:    employer,
		artifactDir: artifactDir,
	}
}

type RunRequest struct {
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	PayDate     time.Time
	Hours       float64
	Rate        float64
	Format      string
	EmailTo     string
}

type RunResult struct {
	Run     PayrollRun `json:"run"`
	Paystub Paystub    `json:"paystub"`
	Ytd     YtdTotals  `json:"ytd"`
}

// RunPayroll executes the full pipeline for one employee and one period:
// compute, persist, aggregate, render, certify, store, deliver. The run and
// its paystub are durably recorded before aggregation so the YTD read
// includes the current run. Nothing is retried here; a failure is terminal
// for the request.
func (s *Service) RunPayroll(ctx context.Context, req RunRequest) (RunResult, error) {
	emp, err := s.store.FindEmployeeByID(ctx, req.EmployeeID)
	if err != nil {
		return RunResult{}, err
	}

	payDate := req.PayDate
	if payDate.IsZero() {
		payDate = req.PeriodEnd
	}
	if payDate.Before(req.PeriodStart) || payDate.After(req.PeriodEnd) {
		return RunResult{}, ErrPayDateOutsidePeriod
	}

	format := req.Format
	if format == "" {
		format = FormatPDF
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return RunResult{}, fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}

	hours := Sanitize(req.Hours)
	rate := Sanitize(req.Rate)
	if rate == 0 {
		rate = Sanitize(emp.HourlyRate)
	}
	gross := hours * rate
	breakdown := Compute(emp, gross)

	run, stub, err := s.store.CreateRunWithPaystub(ctx, PayrollRun{
		EmployeeID:       emp.ID,
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		Hours:            hours,
		HourlyRate:       rate,
		GrossPay:         gross,
		FederalIncomeTax: breakdown.FederalIncomeTax,
		StateIncomeTax:   breakdown.StateIncomeTax,
		SocialSecurity:   breakdown.SocialSecurity,
		Medicare:         breakdown.Medicare,
		TotalTaxes:       breakdown.TotalTaxes,
		NetPay:           breakdown.NetPay,
	}, Paystub{
		PayDate:          payDate,
		VerificationCode: uuid.NewString(),
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("record payroll run: %w", err)
	}

	// Fresh history read after the write; includes the run just recorded.
	history, err := s.store.ListRunsForEmployee(ctx, emp.ID, YearStart(payDate), payDate)
	if err != nil {
		return RunResult{}, fmt.Errorf("read payroll history: %w", err)
	}
	ytd := Accumulate(history, payDate)

	raw, err := renderer.Render(ctx, RenderData{
		Employer: s.employer,
		Employee: emp,
		Run:      run,
		Stub:     stub,
		Ytd:      ytd,
	})
	if err != nil {
		slog.Error("paystub render failed", "paystubId", stub.ID, "format", format, "err", err)
		return RunResult{}, fmt.Errorf("render paystub: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordRender(format)
	}

	certified, err := s.certifier.Certify(raw)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordCertifyFailure()
		}
		slog.Error("paystub certification failed", "paystubId", stub.ID, "err", err)
		return RunResult{}, fmt.Errorf("certify paystub: %w", err)
	}

	fileURL, err := s.storeArtifact(stub.ID, certified)
	if err != nil {
		return RunResult{}, fmt.Errorf("store paystub artifact: %w", err)
	}
	if err := s.store.AttachArtifact(ctx, stub.ID, fileURL); err != nil {
		return RunResult{}, fmt.Errorf("attach paystub artifact: %w", err)
	}
	stub.FileURL = fileURL

	if req.EmailTo != "" && s.mailer != nil {
		err := s.mailer.Send(ctx, req.EmailTo,
			fmt.Sprintf("Paystub for %s", payDate.Format("2006-01-02")),
			fmt.Sprintf("Attached is the paystub for %s %s covering %s to %s.",
				emp.FirstName, emp.LastName,
				run.PeriodStart.Format("2006-01-02"), run.PeriodEnd.Format("2006-01-02")),
			&Attachment{
				Filename:    DeliveryFilename(payDate),
				ContentType: artifactContentType,
				Data:        certified,
			})
		if err != nil {
			return RunResult{}, fmt.Errorf("deliver paystub: %w", err)
		}
	}

	return RunResult{Run: run, Paystub: stub, Ytd: ytd}, nil
}

// DeliveryFilename is the suggested name handed to the delivery
// collaborator.
func DeliveryFilename(payDate time.Time) string {
	return fmt.Sprintf("paystub_%s.pdf", payDate.Format("2006-01-02"))
}

func (s *Service) storeArtifact(paystubID string, data []byte) (string, error) {
	if err := os.MkdirAll(s.artifactDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.artifactDir, paystubID+".pdf")
	if s.crypto != nil && s.crypto.Configured() {
		sealed, err := s.crypto.Seal(data)
		if err != nil {
			return "", err
		}
		path += ".enc"
		if err := os.WriteFile(path, sealed, 0o600); err != nil {
			return "", err
		}
		return path, nil
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Artifact loads a stored certified paystub and returns its bytes together
// with the suggested delivery filename and content type.
func (s *Service) Artifact(ctx context.Context, paystubID string) ([]byte, string, string, error) {
	stub, err := s.store.FindPaystubByID(ctx, paystubID)
	if err != nil {
		return nil, "", "", err
	}
	if stub.FileURL == "" {
		return nil, "", "", ErrNoArtifact
	}
	data, err := os.ReadFile(stub.FileURL)
	if err != nil {
		return nil, "", "", fmt.Errorf("read paystub artifact: %w", err)
	}
	if strings.HasSuffix(stub.FileURL, ".enc") && s.crypto != nil {
		if data, err = s.crypto.Open(data); err != nil {
			return nil, "", "", fmt.Errorf("decrypt paystub artifact: %w", err)
		}
	}
	return data, DeliveryFilename(stub.PayDate), artifactContentType, nil
}

// Verify resolves a verification code to its paystub record.
func (s *Service) Verify(ctx context.Context, code string) (Paystub, error) {
	return s.store.FindPaystubByVerificationCode(ctx, code)
}

// RunsForYear lists an employee's runs whose pay date falls in the given
// calendar year, pay date ascending.
func (s *Service) RunsForYear(ctx context.Context, employeeID string, year int) ([]PayrollRun, error) {
	if _, err := s.store.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return s.store.ListRunsForEmployee(ctx, employeeID, from, to)
}

func (s *Service) Store() StoreAPI {
	return s.store
}
