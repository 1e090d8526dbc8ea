package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validationError turns validator output into an apperrors.ErrValidation error.
func validationError(scope string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, scope, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, scope, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "lt":
		return fe.Field() + " must be less than " + fe.Param()
	case "email":
		return fe.Field() + " must be a valid email"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "len":
		return fe.Field() + " must have length " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// Per-step requirements, checked on Forward.

type typeRequirements struct {
	TransactionType string `json:"transactionType" validate:"required,oneof=send receive"`
}

type senderRequirements struct {
	Name   string          `json:"name" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Phone  string          `json:"phone" validate:"required"`
}

type receiverRequirements struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type stepValidator func(domain.TransactionDraft) error

func noValidation(domain.TransactionDraft) error { return nil }

func requireType(d domain.TransactionDraft) error {
	if err := validate.Struct(typeRequirements{TransactionType: string(d.TransactionType)}); err != nil {
		return validationError("transaction type", err)
	}
	return nil
}

func requireSender(d domain.TransactionDraft) error {
	req := senderRequirements{
		Name:   strings.TrimSpace(d.Sender.Name),
		Amount: d.Amount,
		Phone:  strings.TrimSpace(d.Sender.Phone),
	}
	if err := validate.Struct(req); err != nil {
		return validationError("sender", err)
	}
	return nil
}

func requireReceiver(d domain.TransactionDraft) error {
	req := receiverRequirements{
		Name:  strings.TrimSpace(d.Receiver.Name),
		Phone: strings.TrimSpace(d.Receiver.Phone),
	}
	if err := validate.Struct(req); err != nil {
		return validationError("receiver", err)
	}
	return nil
}

// validators maps each step to the check its forward transition requires.
var validators = map[Step]stepValidator{
	StepChooseType:       requireType,
	StepChooseCountry:    noValidation,
	StepSenderDetails:    requireSender,
	StepReview:           noValidation,
	StepProcessing:       noValidation,
	StepReceiverDetails:  requireReceiver,
	StepSenderInfo:       requireSender,
	StepReceiverInfo:     requireReceiver,
	StepFeeConfig:        noValidation,
	StepPrintAndComplete: noValidation,
}
