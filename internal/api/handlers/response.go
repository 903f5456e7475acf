package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/broki/marketplace-api/internal/infrastructure/observability"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

// Messages shared by several endpoints.
const (
	MsgInternal       = "Internal server error."
	MsgInvalidInteger = "A valid integer is required."
)

const (
	maxRequestBodyBytes = 1 << 20
	maxUploadBodyBytes  = 16 << 20

	detailKey         = "detail"
	nonFieldErrorsKey = "non_field_errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithDetail(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		detailKey: message,
	})
}

func respondWithFields(w http.ResponseWriter, fields apperrors.FieldErrors) {
	respondWithJSON(w, http.StatusBadRequest, fields)
}

// respondWithAppError writes err in the shape its type calls for. Field
// errors become a field map, other application errors a detail message.
// Anything else is logged and reported as a 500.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Type == apperrors.ErrorTypeInternal {
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("method", r.Method).Str("path", r.URL.Path).Msg("Request failed")
		respondWithDetail(w, http.StatusInternalServerError, MsgInternal)
		return
	}
	if len(appErr.Fields) > 0 {
		respondWithFields(w, appErr.Fields)
		return
	}
	if appErr.Type == apperrors.ErrorTypeExternal {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Upstream call failed")
	}
	respondWithDetail(w, apperrors.HTTPStatus(err), appErr.Message)
}

// decodeJSON reads the request body into dst. A malformed body or a value
// of the wrong type is written as a 400 and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		respondWithDetail(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return false
	}
	return decodeBytes(w, body, dst)
}

func decodeBytes(w http.ResponseWriter, body []byte, dst interface{}) bool {
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		if fields := typeErrorFields(err); fields != nil {
			respondWithFields(w, fields)
			return false
		}
		respondWithDetail(w, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return false
	}
	return true
}

// typeErrorFields converts a json type mismatch into a field error. It
// returns nil for other decode failures.
func typeErrorFields(err error) apperrors.FieldErrors {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil
	}

	fields := apperrors.FieldErrors{}
	switch typeErr.Type.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		fields.Add(typeErr.Field, MsgInvalidInteger)
	case reflect.Bool:
		fields.Add(typeErr.Field, "Must be a valid boolean.")
	case reflect.String:
		fields.Add(typeErr.Field, "Not a valid string.")
	default:
		fields.Add(typeErr.Field, fmt.Sprintf("Invalid value for %s.", typeErr.Field))
	}
	return fields
}

// pathID parses the integer path value name. ok is false when it is not
// a positive integer.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
