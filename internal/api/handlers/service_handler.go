package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/broki/marketplace-api/internal/application/services"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
	"github.com/broki/marketplace-api/pkg/pagination"
)

const (
	servicePageSize    = 7
	maxServicePageSize = 100

	// defaultServiceStatus lists active services unless a status is given.
	defaultServiceStatus = 1
)

// ListingService defines the bookable service operations used by the handler.
type ListingService interface {
	List(ctx context.Context, status, limit, offset int) (*services.ServiceListing, error)
	Detail(ctx context.Context, id int64) (*services.ServiceDetail, error)
}

// ServiceHandler handles the bookable service endpoints.
type ServiceHandler struct {
	service ListingService
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(service ListingService) *ServiceHandler {
	return &ServiceHandler{service: service}
}

// ListServices handles GET /api/service-list/
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := defaultServiceStatus
	if raw, ok := q["status"]; ok {
		v, err := strconv.Atoi(strings.TrimSpace(raw[0]))
		if err != nil {
			fields := apperrors.FieldErrors{}
			fields.Add("status", MsgInvalidInteger)
			respondWithFields(w, fields)
			return
		}
		status = v
	}

	p, err := pagination.Parse(q, "per_page", servicePageSize, maxServicePageSize)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	listing, err := h.service.List(r.Context(), status, p.Limit(), p.Offset())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if err := p.Validate(listing.Total); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pagination.NewServicePage(r, p, listing.Total, newServiceItems(listing.Services), listing.Max, listing.Min))
}

// GetServiceDetail handles GET /api/service-detail/{id}/
func (h *ServiceHandler) GetServiceDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	detail, err := h.service.Detail(r.Context(), id)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		respondWithError(w, http.StatusNotFound, "Service not found")
		return
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service_detail": serviceDetailItem{
			serviceItem:           newServiceItem(detail.Service),
			Provider:              detail.Provider,
			ServiceAddressMapping: emptyIfNil(detail.AddressMappings),
		},
		"customer_review": emptyIfNil(detail.Reviews),
		"coupon_data":     emptyIfNil(detail.Coupons),
		"taxes":           emptyIfNil(detail.Taxes),
		"related_service": newRelatedServiceItems(detail.Related),
		"service_faq":     emptyIfNil(detail.FAQs),
		"serviceaddon":    emptyIfNil(detail.Addons),
	})
}
