package dto

import (
	"reflect"
	"regexp"

	"github.com/SscSPs/neobank_backend/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// RegisterValidators teaches v about decimal amounts and the request rules
// that struct tags alone cannot express.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		return pinPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(TransferRequest)
		if !req.HasRecipient() {
			sl.ReportError(req.RecipientPublicID, "RecipientPublicID", "recipientPublicId", "recipient", "")
		}
	}, TransferRequest{})

	return nil
}
