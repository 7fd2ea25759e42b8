package payroll

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrPaystubNotFound      = errors.New("paystub not found")
	ErrUnknownFormat        = errors.New("unknown paystub format")
	ErrPayDateOutsidePeriod = errors.New("pay date must fall within the pay period")
	ErrNoArtifact           = errors.New("paystub has no rendered artifact")
)
