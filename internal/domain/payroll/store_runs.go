package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// CreateRunWithPaystub inserts the run and its paystub in one transaction so
// the pair is created atomically. The returned records carry the generated
// identifiers and timestamps.
func (s *Store) CreateRunWithPaystub(ctx context.Context, run PayrollRun, stub Paystub) (PayrollRun, Paystub, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return PayrollRun{}, Paystub{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
    INSERT INTO payroll_runs (
      employee_id, period_start, period_end, hours, hourly_rate, gross_pay,
      federal_income_tax, state_income_tax, social_security, medicare,
      total_taxes, net_pay
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id, created_at
  `, run.EmployeeID, run.PeriodStart, run.PeriodEnd, run.Hours, run.HourlyRate,
		run.GrossPay, run.FederalIncomeTax, run.StateIncomeTax, run.SocialSecurity,
		run.Medicare, run.TotalTaxes, run.NetPay).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return PayrollRun{}, Paystub{}, err
	}

	stub.PayrollRunID = run.ID
	stub.EmployeeID = run.EmployeeID
	err = tx.QueryRow(ctx, `
    INSERT INTO paystubs (payroll_run_id, employee_id, pay_date, verification_code)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, stub.PayrollRunID, stub.EmployeeID, stub.PayDate, stub.VerificationCode).Scan(&stub.ID, &stub.CreatedAt)
	if err != nil {
		return PayrollRun{}, Paystub{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return PayrollRun{}, Paystub{}, err
	}
	run.PayDate = stub.PayDate
	return run, stub, nil
}

// ListRunsForEmployee returns runs whose pay date falls in [from, to],
// ordered by pay date then id ascending. The fixed order keeps repeated YTD
// aggregation numerically identical.
func (s *Store) ListRunsForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]PayrollRun, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, r.employee_id, r.period_start, r.period_end, p.pay_date,
           r.hours, r.hourly_rate, r.gross_pay,
           r.federal_income_tax, r.state_income_tax, r.social_security,
           r.medicare, r.total_taxes, r.net_pay, r.created_at
    FROM payroll_runs r
    JOIN paystubs p ON p.payroll_run_id = r.id
    WHERE r.employee_id = $1 AND p.pay_date >= $2 AND p.pay_date <= $3
    ORDER BY p.pay_date ASC, r.id ASC
  `, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []PayrollRun
	for rows.Next() {
		var run PayrollRun
		if err := rows.Scan(
			&run.ID, &run.EmployeeID, &run.PeriodStart, &run.PeriodEnd, &run.PayDate,
			&run.Hours, &run.HourlyRate, &run.GrossPay,
			&run.FederalIncomeTax, &run.StateIncomeTax, &run.SocialSecurity,
			&run.Medicare, &run.TotalTaxes, &run.NetPay, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

const paystubColumns = `
    id, payroll_run_id, employee_id, pay_date,
    COALESCE(verification_code, ''), COALESCE(file_url, ''), created_at`

func scanPaystub(row pgx.Row) (Paystub, error) {
	var stub Paystub
	err := row.Scan(&stub.ID, &stub.PayrollRunID, &stub.EmployeeID, &stub.PayDate,
		&stub.VerificationCode, &stub.FileURL, &stub.CreatedAt)
	return stub, err
}

func (s *Store) FindPaystubByID(ctx context.Context, id string) (Paystub, error) {
	stub, err := scanPaystub(s.DB.QueryRow(ctx, `
    SELECT`+paystubColumns+`
    FROM paystubs
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Paystub{}, ErrPaystubNotFound
	}
	if err != nil {
		return Paystub{}, err
	}
	return stub, nil
}

func (s *Store) FindPaystubByVerificationCode(ctx context.Context, code string) (Paystub, error) {
	stub, err := scanPaystub(s.DB.QueryRow(ctx, `
    SELECT`+paystubColumns+`
    FROM paystubs
    WHERE verification_code = $1
  `, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return Paystub{}, ErrPaystubNotFound
	}
	if err != nil {
		return Paystub{}, err
	}
	return stub, nil
}

// AttachArtifact records the rendered file location. It is the only write a
// paystub row sees after creation.
func (s *Store) AttachArtifact(ctx context.Context, paystubID, fileURL string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE paystubs
    SET file_url = $2
    WHERE id = $1
  `, paystubID, fileURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaystubNotFound
	}
	return nil
}

// RegisterRows returns one line per run in [from, to] across all employees,
// for the payroll register export.
func (s *Store) RegisterRows(ctx context.Context, from, to time.Time) ([]RegisterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.first_name || ' ' || e.last_name, p.pay_date,
           r.hours, r.gross_pay,
           r.federal_income_tax, r.state_income_tax, r.social_security,
           r.medicare, r.total_taxes, r.net_pay
    FROM payroll_runs r
    JOIN paystubs p ON p.payroll_run_id = r.id
    JOIN employees e ON e.id = r.employee_id
    WHERE p.pay_date >= $1 AND p.pay_date <= $2
    ORDER BY p.pay_date ASC, e.last_name ASC
  `, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var register []RegisterRow
	for rows.Next() {
		var row RegisterRow
		if err := rows.Scan(&row.EmployeeName, &row.PayDate, &row.Hours,
			&row.GrossPay, &row.FederalIncomeTax, &row.StateIncomeTax,
			&row.SocialSecurity, &row.Medicare, &row.TotalTaxes, &row.NetPay); err != nil {
			return nil, err
		}
		register = append(register, row)
	}
	return register, rows.Err()
}
