package formz

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator converts a raw field value into either a normalized value or a
// validation failure. Implementations may block on I/O; the Field never
// assumes synchronous completion.
//
// Failures should be returned as *ValidationError. Any other error is
// treated as a KindOther failure carrying err.Error() as its message.
type Validator interface {
	Validate(ctx context.Context, value string) (string, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, value string) (string, error)

// Validate calls fn(ctx, value).
func (fn ValidatorFunc) Validate(ctx context.Context, value string) (string, error) {
	return fn(ctx, value)
}

// Chain runs validators in order, feeding each one the value returned by
// the previous. The first failure stops the chain.
func Chain(validators ...Validator) Validator {
	return ValidatorFunc(func(ctx context.Context, value string) (string, error) {
		current := value
		for _, v := range validators {
			next, err := v.Validate(ctx, current)
			if err != nil {
				return "", err
			}
			current = next
		}
		return current, nil
	})
}

// passthrough is used when a Field has no validator configured.
var passthrough = ValidatorFunc(func(_ context.Context, value string) (string, error) {
	return value, nil
})

// validate is the shared go-playground validator instance.
var validate = validator.New()

// TagValidator validates a value against go-playground/validator tags,
// for example "required,min=5". A failing "required" tag produces a
// KindRequired error; every other tag produces KindOther.
type TagValidator struct {
	tags     string
	messages map[string]string
}

// NewTagValidator creates a TagValidator for the given tag expression.
// Unknown tags are programmer errors and panic immediately.
func NewTagValidator(tags string) *TagValidator {
	// Surface malformed tags at construction rather than on first use.
	_ = validate.Var("", tags) //nolint:errcheck // only checking for a panic
	return &TagValidator{
		tags:     tags,
		messages: make(map[string]string),
	}
}

// Message overrides the error message for a tag. Returns the validator for
// chaining.
func (v *TagValidator) Message(tag, message string) *TagValidator {
	v.messages[tag] = message
	return v
}

// Validate implements Validator. The value is returned unchanged on success.
func (v *TagValidator) Validate(ctx context.Context, value string) (string, error) {
	err := validate.VarCtx(ctx, value, v.tags)
	if err == nil {
		return value, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "", &ValidationError{Kind: KindOther, Message: err.Error()}
	}

	fe := fieldErrs[0]
	kind := KindOther
	if fe.Tag() == "required" {
		kind = KindRequired
	}
	return "", &ValidationError{Kind: kind, Message: v.message(fe.Tag(), fe.Param())}
}

func (v *TagValidator) message(tag, param string) string {
	if msg, ok := v.messages[tag]; ok {
		return msg
	}
	switch tag {
	case "required":
		return "value is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "len":
		return fmt.Sprintf("must be exactly %s characters", param)
	case "email":
		return "must be a valid email address"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s=%s", tag, param)
		}
		return fmt.Sprintf("failed %s", tag)
	}
}

// Ensure TagValidator implements Validator.
var _ Validator = (*TagValidator)(nil)
