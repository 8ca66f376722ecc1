package reservation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrGuestInvalid = errors.New("reservation: invalid guest details")

var validate = validator.New()

// Guest is the submitting customer. Phone is the required contact
// channel; email is optional but must be well formed when given.
type Guest struct {
	Name  string `validate:"required,min=2,max=100"`
	Phone string `validate:"required,min=6,max=20"`
	Email string `validate:"omitempty,email,max=100"`
}

// Validate checks the contact policy.
func (g Guest) Validate() error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("%w: %s", ErrGuestInvalid, firstViolation(err))
	}
	return nil
}

func firstViolation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("%s failed on %s", verrs[0].Field(), verrs[0].Tag())
	}
	return err.Error()
}
