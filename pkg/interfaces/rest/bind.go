package rest

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. A non-nil response has
// to be rendered by the caller.
func (s *Server) decode(r *http.Request, dst any) *ErrorResponse {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return badRequest(err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return toErrorResponse(err)
	}
	return nil
}

func idParam(r *http.Request) (uuid.UUID, *ErrorResponse) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, badRequest(err)
	}
	return id, nil
}
