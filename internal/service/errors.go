package service

import (
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/hostezee/billing/internal/calculator"
	"github.com/hostezee/billing/internal/storage"
)

var (
	errUnknownRoom = errors.New("booking references an unknown room")
	errNoRooms     = errors.New("group booking needs at least one room")
	errManagerOnly = errors.New("only managers can change rooms")
)

// validate is shared by all services; validator caches struct metadata per type.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// amount accepts plain rupee strings such as "1500" or "249.50"
	v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return calculator.ValidAmount(fl.Field().String())
	})
	return v
}

// validateRequest checks the validate tags of a request message.
func validateRequest(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			msgs[i] = fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
		}
		err = errors.New(strings.Join(msgs, "; "))
	}
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// storageError maps storage failures onto Connect codes.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrBookingClosed):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrChargesChanged):
		return connect.NewError(connect.CodeAborted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
