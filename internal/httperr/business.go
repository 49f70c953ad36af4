package httperr

import "errors"

// BusinessError carrega um código estável de regra de negócio que os
// handlers traduzem para 400, sem vazar erro de banco para o cliente.
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

// Códigos compartilhados entre use cases e handlers.
const (
	CodeAnimalNotFound       = "animal_not_found"
	CodeAssessmentNotFound   = "assessment_not_found"
	CodeAnimalHasAssessments = "animal_has_assessments"
	CodeBreedHasAnimals      = "breed_has_animals"
	CodeInvalidClinicalValue = "invalid_clinical_value"
)
