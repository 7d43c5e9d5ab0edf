package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"gsinfo-directory/internal/apperror"
	"gsinfo-directory/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"success": false, "error": message}.
// Internal failures are logged and reported with a generic message.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, "internal server error"

		var he *echo.HTTPError
		if appErr, ok := apperror.As(err); ok {
			status = apperror.HTTPStatus(appErr.Kind)
			if appErr.Kind != apperror.KindInternal {
				msg = appErr.Message
			}
		} else if errors.As(err, &he) {
			status = he.Code
			msg = http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, dto.ErrorResponse{Success: false, Error: msg})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

type requestValidator struct {
	validate *validator.Validate
}

// NewValidator reports field names by their json tag.
func NewValidator() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.Wrap(apperror.KindValidation, fieldMessage(fe), err)
	}
	return apperror.Wrap(apperror.KindValidation, "invalid request", err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
