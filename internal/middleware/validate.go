package middleware

import (
	"errors"
	"net/http"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that also understands the "sector" tag.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("sector", func(fl validator.FieldLevel) bool {
		_, err := sector.Parse(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// Validate validates the provided struct
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// QueryError lists the query fields that failed validation.
type QueryError struct {
	Fields map[string]string
}

func (e *QueryError) Error() string {
	return "invalid query parameters"
}

// ParseQuery fills dst from the query string and validates it.
func (v *Validator) ParseQuery(c *fiber.Ctx, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return &QueryError{Fields: map[string]string{"query": err.Error()}}
	}
	if err := v.Validate(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &QueryError{Fields: fields}
	}
	return nil
}

// ErrorHandler renders every unhandled error as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		logger.Get().Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("HTTP error")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
