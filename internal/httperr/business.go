package httperr

import "errors"

// Códigos de regra de negócio do núcleo de agenda.
const (
	CodeInvalidInterval      = "invalid_interval"
	CodeAppointmentNotFound  = "appointment_not_found"
	CodeInvalidStatus        = "invalid_status"
	CodeTimeConflict         = "time_conflict"
	CodeInvalidBusinessHours = "invalid_business_hours"
	CodeMutationCancelled    = "mutation_cancelled"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode returns the code of a wrapped BusinessError, if any.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
