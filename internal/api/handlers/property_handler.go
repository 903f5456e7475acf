package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/broki/marketplace-api/internal/application/services"
	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/broki/marketplace-api/pkg/pagination"
)

const (
	propertyPageSize    = 6
	nearbyPageSize      = 12
	maxPropertyPageSize = 100

	msgEnterNumber = "Enter a number."
)

var propertyOrderFields = map[string]bool{
	"price":            true,
	"sqft":             true,
	"premium_property": true,
}

// PropertyService defines the property operations used by the handler.
type PropertyService interface {
	List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, int, error)
	Get(ctx context.Context, id int64) (*entities.Property, error)
	Nearby(ctx context.Context, filter repositories.NearbyFilter) ([]*entities.Property, int, error)
	BulkUpload(ctx context.Context, items []services.IndexedPropertyInput) ([]*entities.Property, []services.UploadFailure, error)
}

// PropertyHandler handles property listing, detail and upload endpoints.
type PropertyHandler struct {
	service PropertyService
}

// NewPropertyHandler creates a new property handler.
func NewPropertyHandler(service PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// ListProperties handles GET /api/filter-property-list/
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := apperrors.FieldErrors{}

	filter := repositories.PropertyFilter{
		CityID:     queryInt(q, "city", fields),
		CategoryID: queryInt(q, "category", fields),
		PriceMin:   queryInt(q, "price_min", fields),
		PriceMax:   queryInt(q, "price_max", fields),
		SqftMin:    queryInt(q, "sqft_min", fields),
		SqftMax:    queryInt(q, "sqft_max", fields),
		Search:     strings.TrimSpace(q.Get("search")),
		OrderBy:    parseOrdering(q.Get("ordering")),
	}
	propertyFor := queryInt(q, "property_for", fields)
	listingStatus := queryInt(q, "listing_status", fields)
	if len(fields) > 0 {
		respondWithFields(w, fields)
		return
	}

	p, err := pagination.Parse(q, "page_size", propertyPageSize, maxPropertyPageSize)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	// property_for and listing_status filter the same column.
	if propertyFor != nil && listingStatus != nil && *propertyFor != *listingStatus {
		respondWithJSON(w, http.StatusOK, pagination.NewPage[propertyListItem](r, p, 0, nil))
		return
	}
	filter.PropertyFor = propertyFor
	if filter.PropertyFor == nil {
		filter.PropertyFor = listingStatus
	}
	filter.Limit, filter.Offset = p.Limit(), p.Offset()

	properties, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := p.Validate(total); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pagination.NewPage(r, p, total, newPropertyListItems(properties)))
}

type uploadRequest struct {
	Property []json.RawMessage `json:"property"`
}

// UploadProperties handles POST /api/upload-properties/. Each item is
// validated on its own; a partial upload answers 207.
func (h *PropertyHandler) UploadProperties(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBodyBytes))
	if err != nil {
		respondWithDetail(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}

	var req uploadRequest
	if !decodeBytes(w, body, &req) {
		return
	}

	items := make([]services.IndexedPropertyInput, 0, len(req.Property))
	failures := []services.UploadFailure{}
	for i, raw := range req.Property {
		input, fields := decodePropertyInput(raw)
		if fields != nil {
			failures = append(failures, services.UploadFailure{Index: i, Errors: fields})
			continue
		}
		items = append(items, services.IndexedPropertyInput{Index: i, Input: input})
	}

	saved, rejected, err := h.service.BulkUpload(r.Context(), items)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	failures = append(failures, rejected...)
	sort.Slice(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })

	if len(failures) > 0 {
		respondWithJSON(w, http.StatusMultiStatus, map[string]interface{}{
			"message": "Some properties could not be uploaded.",
			"saved":   newPropertyListItems(saved),
			"errors":  failures,
		})
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "All properties uploaded successfully.",
		"data":    newPropertyListItems(saved),
	})
}

func decodePropertyInput(raw json.RawMessage) (services.PropertyInput, apperrors.FieldErrors) {
	var input services.PropertyInput

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		fields := apperrors.FieldErrors{}
		fields.Add(nonFieldErrorsKey, "Invalid data. Expected a dictionary.")
		return input, fields
	}

	if err := json.Unmarshal(raw, &input); err != nil {
		if fields := typeErrorFields(err); fields != nil {
			return input, fields
		}
		fields := apperrors.FieldErrors{}
		if errors.Is(err, services.ErrInvalidCityRef) {
			fields.Add("city", services.ErrInvalidCityRef.Error())
		} else {
			fields.Add(nonFieldErrorsKey, "Invalid data.")
		}
		return input, fields
	}
	return input, nil
}

type propertyDetailRequest struct {
	ID json.RawMessage `json:"id"`
}

// GetPropertyDetail handles POST /api/property-detail/
func (h *PropertyHandler) GetPropertyDetail(w http.ResponseWriter, r *http.Request) {
	var req propertyDetailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, present, valid := parseBodyID(req.ID)
	if !present {
		respondWithError(w, http.StatusBadRequest, "Missing 'id' in request body")
		return
	}
	if !valid {
		respondWithError(w, http.StatusNotFound, "Property not found")
		return
	}

	property, err := h.service.Get(r.Context(), id)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		respondWithError(w, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newPropertyDetail(property))
}

// ListNearbyProperties handles GET /api/nearby-property-list/
func (h *PropertyHandler) ListNearbyProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := apperrors.FieldErrors{}

	city := strings.TrimSpace(q.Get("city"))
	if city == "" {
		fields.Add("city", "This query parameter is required.")
	}
	excludeID := queryInt(q, "exclude_id", fields)
	if len(fields) > 0 {
		respondWithFields(w, fields)
		return
	}

	p, err := pagination.Parse(q, "per_page", nearbyPageSize, maxPropertyPageSize)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	properties, total, err := h.service.Nearby(r.Context(), repositories.NearbyFilter{
		CityName:  city,
		ExcludeID: excludeID,
		Limit:     p.Limit(),
		Offset:    p.Offset(),
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := p.Validate(total); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pagination.NewPage(r, p, total, newPropertyListItems(properties)))
}

// queryInt parses an optional integer query parameter, recording a field
// error when it is not a number.
func queryInt(q url.Values, name string, fields apperrors.FieldErrors) *int64 {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fields.Add(name, msgEnterNumber)
		return nil
	}
	return &v
}

// parseOrdering reads a comma separated list of fields, each optionally
// prefixed with '-'. Unknown fields are ignored.
func parseOrdering(raw string) []repositories.PropertyOrder {
	var orders []repositories.PropertyOrder
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if !propertyOrderFields[field] {
			continue
		}
		orders = append(orders, repositories.PropertyOrder{Field: field, Desc: desc})
	}
	return orders
}

// parseBodyID accepts a JSON number or a numeric string.
func parseBodyID(raw json.RawMessage) (id int64, present, valid bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) || bytes.Equal(raw, []byte("0")) {
		return 0, false, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = []byte(strings.TrimSpace(s))
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, true, false
	}
	return id, true, true
}
