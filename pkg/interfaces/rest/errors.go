package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/services/leadtime"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeValidation = "VALIDATION_ERROR"
	CodeUserError  = "USER_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	HTTPStatus int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatus)
	return nil
}

// toErrorResponse maps domain errors onto HTTP statuses
func toErrorResponse(err error) *ErrorResponse {
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return &ErrorResponse{HTTPStatus: http.StatusBadRequest, Code: CodeValidation, Message: "validation failed", Fields: fields}
	case errors.Is(err, leadtime.ErrInvalidLeadTime), errors.Is(err, entities.ErrValidation):
		return &ErrorResponse{HTTPStatus: http.StatusBadRequest, Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, entities.ErrUserError):
		return &ErrorResponse{HTTPStatus: http.StatusBadRequest, Code: CodeUserError, Message: err.Error()}
	case errors.Is(err, entities.ErrNotFound):
		return &ErrorResponse{HTTPStatus: http.StatusNotFound, Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, entities.ErrDuplicate), errors.Is(err, entities.ErrRestricted):
		return &ErrorResponse{HTTPStatus: http.StatusConflict, Code: CodeConflict, Message: err.Error()}
	default:
		return &ErrorResponse{HTTPStatus: http.StatusInternalServerError, Code: CodeInternal, Message: "internal server error"}
	}
}

func badRequest(err error) *ErrorResponse {
	return &ErrorResponse{HTTPStatus: http.StatusBadRequest, Code: CodeBadRequest, Message: err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "min":
		return fe.Field() + " must contain at least " + fe.Param() + " item(s)"
	default:
		return fe.Field() + " failed on " + fe.Tag()
	}
}
