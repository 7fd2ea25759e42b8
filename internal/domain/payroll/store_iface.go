package payroll

import (
	"context"
	"time"
)

type StoreAPI interface {
	FindEmployeeByID(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (string, error)
	UpdateWithholding(ctx context.Context, employeeID string, w Withholding) error
	CreateRunWithPaystub(ctx context.Context, run PayrollRun, stub Paystub) (PayrollRun, Paystub, error)
	ListRunsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]PayrollRun, error)
	FindPaystubByID(ctx context.Context, id string) (Paystub, error)
	FindPaystubByVerificationCode(ctx context.Context, code string) (Paystub, error)
	AttachArtifact(ctx context.Context, paystubID, fileURL string) error
	RegisterRows(ctx context.Context, from, to time.Time) ([]RegisterRow, error)
}

var _ StoreAPI = (*Store)(nil)
