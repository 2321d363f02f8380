package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ppiankov/medprep/internal/adapters"
	"github.com/ppiankov/medprep/internal/model"
)

// FieldError describes one invalid configuration field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every invalid field found in a configuration
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Error())
	}
	return fmt.Sprintf("invalid configuration: %d error(s): [%s]", len(e), strings.Join(messages, "; "))
}

// ConfigValidator checks a model.Config before a run
type ConfigValidator struct {
	validate *validator.Validate
}

// NewConfigValidator creates a validator with the medprep-specific rules registered
func NewConfigValidator() *ConfigValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("source_id", func(fl validator.FieldLevel) bool {
		return adapters.KnownSource(fl.Field().String())
	})

	return &ConfigValidator{validate: v}
}

// Validate returns nil or an Errors value listing every failing field
func (c *ConfigValidator) Validate(cfg *model.Config) error {
	if cfg == nil {
		return Errors{{Field: "config", Message: "is nil"}}
	}

	err := c.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Config."),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("needs at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unique":
		return fmt.Sprintf("must have unique %s values", fe.Param())
	case "source_id":
		return fmt.Sprintf("unknown source %q", fe.Value())
	case "excludesall":
		return "must be a file name, not a path"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
