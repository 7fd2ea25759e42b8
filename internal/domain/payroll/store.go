package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, first_name, last_name, email, phone, address, state, bank_account,
    hourly_rate, federal_withholding_rate, state_withholding_rate,
    extra_withholding_federal, extra_withholding_state,
    exempt_federal, exempt_state, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.Address, &emp.State, &emp.BankAccount, &emp.HourlyRate,
		&emp.FederalWithholdingRate, &emp.StateWithholdingRate,
		&emp.ExtraWithholdingFederal, &emp.ExtraWithholdingState,
		&emp.ExemptFederal, &emp.ExemptState, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) FindEmployeeByID(ctx context.Context, id string) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      first_name, last_name, email, phone, address, state, bank_account,
      hourly_rate, federal_withholding_rate, state_withholding_rate,
      extra_withholding_federal, extra_withholding_state,
      exempt_federal, exempt_state
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    RETURNING id
  `, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Address, emp.State,
		emp.BankAccount, emp.HourlyRate, emp.FederalWithholdingRate,
		emp.StateWithholdingRate, emp.ExtraWithholdingFederal,
		emp.ExtraWithholdingState, emp.ExemptFederal, emp.ExemptState).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateWithholding(ctx context.Context, employeeID string, w Withholding) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET federal_withholding_rate = $2,
        state_withholding_rate = $3,
        extra_withholding_federal = $4,
        extra_withholding_state = $5,
        exempt_federal = $6,
        exempt_state = $7,
        updated_at = now()
    WHERE id = $1
  `, employeeID, w.FederalRate, w.StateRate, w.ExtraFederal, w.ExtraState,
		w.ExemptFederal, w.ExemptState)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
