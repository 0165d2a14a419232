package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/contracts"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

const (
	maxBodyBytes    = 1 << 20
	contractVersion = "1.0.0"

	// same text for every login failure
	invalidCredentialsMessage = "invalid email or password"
)

// ErrorResponse - body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSONError sends {"error": <status text>, "message": message}.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// RespondWithJSON sends payload as JSON.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status of the error kind. Unexpected errors are
// logged with context and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		contextkeys.LoggerFromContext(r.Context()).
			Error("Request failed", err, port.Fields{"handler": handler})
		WriteJSONError(w, status, "Internal server error")
		return
	}
	if status == http.StatusUnauthorized {
		contextkeys.LoggerFromContext(r.Context()).
			Warn("Authentication failed", port.Fields{"handler": handler, "reason": err.Error()})
		WriteJSONError(w, status, invalidCredentialsMessage)
		return
	}
	WriteJSONError(w, status, err.Error())
}

// decodeBody checks the body against the named request contract and then
// unmarshals it into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, contract string, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("could not read request body: %v", err))
	}
	if err := contracts.ValidateRequest(contract, contractVersion, body); err != nil {
		return domain.NewValidationError(err.Error())
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// pathID reads a positive int64 URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return id, nil
}

// parsePage reads the zero-based "page" and "size" query parameters.
func parsePage(query url.Values, defaultSize int) (domain.PageRequest, error) {
	page := domain.PageRequest{Page: 0, Size: defaultSize}
	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, domain.NewValidationError(fmt.Sprintf("page must be an integer, got %q", v))
		}
		page.Page = n
	}
	if v := query.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, domain.NewValidationError(fmt.Sprintf("size must be an integer, got %q", v))
		}
		page.Size = n
	}
	return page, nil
}

func parseFloat(query url.Values, key string) (*float64, error) {
	v := query.Get(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("%s must be a number, got %q", key, v))
	}
	return &f, nil
}

func parseInt(query url.Values, key string) (*int, error) {
	v := query.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("%s must be an integer, got %q", key, v))
	}
	return &n, nil
}

func parseString(query url.Values, key string) *string {
	v := query.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// parsePropertyFilter builds the filter from status, type, minPrice, maxPrice,
// category, minArea, maxArea and minBedrooms.
func parsePropertyFilter(query url.Values) (domain.PropertyFilter, error) {
	var (
		filter domain.PropertyFilter
		err    error
	)

	if v := query.Get("status"); v != "" {
		status, err := domain.ParsePropertyStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if v := query.Get("type"); v != "" {
		propertyType, err := domain.ParsePropertyType(v)
		if err != nil {
			return filter, err
		}
		filter.Type = &propertyType
	}
	if filter.PriceMin, err = parseFloat(query, "minPrice"); err != nil {
		return filter, err
	}
	if filter.PriceMax, err = parseFloat(query, "maxPrice"); err != nil {
		return filter, err
	}
	filter.Category = parseString(query, "category")
	if filter.AreaMin, err = parseFloat(query, "minArea"); err != nil {
		return filter, err
	}
	if filter.AreaMax, err = parseFloat(query, "maxArea"); err != nil {
		return filter, err
	}
	if filter.MinBedrooms, err = parseInt(query, "minBedrooms"); err != nil {
		return filter, err
	}
	return filter, nil
}
