package workspace

import (
	"errors"
	"fmt"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/go-playground/validator/v10"
)

var candidateValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("inputprop", func(fl validator.FieldLevel) bool {
		return domain.IsInputProperty(fl.Field().String())
	})
	return v
}

// ValidateCandidate checks the structure of a candidate before normalization.
// Missing values map to domain.ErrInvalidNumber; property problems to domain.ErrInvalidCandidate.
func ValidateCandidate(c domain.Candidate) error {
	err := candidateValidator.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCandidate, err)
	}
	for _, fe := range verrs {
		if fe.Field() == "Value1" || fe.Field() == "Value2" {
			return fmt.Errorf("%w: %s is empty", domain.ErrInvalidNumber, fe.Field())
		}
	}
	fe := verrs[0]
	return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidCandidate, fe.Field(), fe.Tag())
}
