package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// maxBodySize is the largest request body the API accepts.
const maxBodySize = 1 << 20

var validate = newValidator()

// newValidator returns a validator that names fields by their JSON key.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errorResponse is the body of every API error.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderNotFound(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusNotFound, errorResponse{
		Code:    "not_found",
		Message: http.StatusText(http.StatusNotFound),
	})
}

// renderJSON renders a JSON response with the given status code and value.
func renderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding json", "err", err)
	}
}

// renderNoContent renders an empty 204 response.
func renderNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// errorStatus maps an error to its HTTP status code and error code.
func errorStatus(err error) (int, string) {
	switch proto.Kind(err) {
	case proto.ErrUnauthenticated:
		return http.StatusUnauthorized, "unauthenticated"
	case proto.ErrPermissionDenied:
		return http.StatusForbidden, "permission_denied"
	case proto.ErrForbidden:
		return http.StatusForbidden, "forbidden"
	case proto.ErrNotFound:
		return http.StatusNotFound, "not_found"
	case proto.ErrConflict:
		return http.StatusConflict, "conflict"
	case proto.ErrValidation:
		return http.StatusUnprocessableEntity, "validation_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// renderError renders err as a JSON error response. Errors without a known
// kind are logged and hidden from the client.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("internal error", "err", err)
		msg = http.StatusText(status)
	}
	renderJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads the request body into v and validates it.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return proto.ValidationError("invalid request body: %v", err)
	}
	return validateStruct(v)
}

// validateStruct validates v and turns the first failed field into a
// validation error.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		if fe.Param() != "" {
			return proto.ValidationError("%s failed %s=%s", field, fe.Tag(), fe.Param())
		}
		return proto.ValidationError("%s failed %s", field, fe.Tag())
	}

	return err
}

// pathID returns the numeric route variable name.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, proto.ValidationError("invalid %s id", name)
	}
	return id, nil
}

// queryID returns the numeric query parameter name, or 0 if it is absent.
func queryID(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 0 {
		return 0, proto.ValidationError("invalid %s", name)
	}
	return id, nil
}
