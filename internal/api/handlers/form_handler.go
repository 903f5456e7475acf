package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	"github.com/broki/marketplace-api/pkg/validation"
)

const (
	formRateLimit  = 20
	formRateWindow = time.Hour

	msgThrottled = "Request was throttled."
)

// LeadService defines the form operations used by the handler.
type LeadService interface {
	SubmitOutletForm(ctx context.Context, form *entities.OutletForm) error
	SubmitContactForm(ctx context.Context, form *entities.ContactForm) error
}

// FormHandler handles the public enquiry forms.
type FormHandler struct {
	service   LeadService
	validator *validation.Validator
	limiter   *submissionLimiter
}

// NewFormHandler creates a new form handler. cache may be nil.
func NewFormHandler(service LeadService, validator *validation.Validator, cache providers.CacheProvider) *FormHandler {
	return &FormHandler{
		service:   service,
		validator: validator,
		limiter:   newSubmissionLimiter(cache, formRateLimit, formRateWindow),
	}
}

type outletFormRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,max=50"`
	Email      string `json:"email" validate:"required,email,max=254"`
	OutletType string `json:"outlet_type" validate:"required,max=50"`
	Location   string `json:"location" validate:"required,max=100"`
	Brand      string `json:"brand" validate:"required,max=100"`
	MaxBudget  *int64 `json:"max_budget" validate:"required"`
	MinSize    *int   `json:"min_size" validate:"required"`
}

type contactFormRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,max=50"`
	Email      string `json:"email" validate:"required,email,max=254"`
	OutletType string `json:"outlet_type" validate:"required,max=50"`
	Location   string `json:"location" validate:"required,max=100"`
	BrandName  string `json:"brand_name" validate:"required,max=100"`
}

// SubmitOutletForm handles POST /api/submit-form/
func (h *FormHandler) SubmitOutletForm(w http.ResponseWriter, r *http.Request) {
	var req outletFormRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trimAll(&req.Name, &req.Phone, &req.Email, &req.OutletType, &req.Location, &req.Brand)

	if fields := h.validator.Fields(req); len(fields) > 0 {
		respondWithFields(w, fields)
		return
	}
	if !h.allow(w, r, "outlet") {
		return
	}

	form := &entities.OutletForm{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		OutletType: req.OutletType,
		Location:   req.Location,
		Brand:      req.Brand,
		MaxBudget:  *req.MaxBudget,
		MinSize:    *req.MinSize,
	}
	if err := h.service.SubmitOutletForm(r.Context(), form); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Data saved successfully!"})
}

// SubmitContactForm handles POST /api/submit-contact-form/
func (h *FormHandler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	var req contactFormRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	trimAll(&req.Name, &req.Phone, &req.Email, &req.OutletType, &req.Location, &req.BrandName)

	if fields := h.validator.Fields(req); len(fields) > 0 {
		respondWithFields(w, fields)
		return
	}
	if !h.allow(w, r, "contact") {
		return
	}

	form := &entities.ContactForm{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		OutletType: req.OutletType,
		Location:   req.Location,
		BrandName:  req.BrandName,
	}
	if err := h.service.SubmitContactForm(r.Context(), form); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Contact form submitted successfully!"})
}

func (h *FormHandler) allow(w http.ResponseWriter, r *http.Request, form string) bool {
	allowed, retryAfter := h.limiter.allow(r.Context(), "forms:rate:"+form+":"+clientIP(r))
	if allowed {
		return true
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	respondWithDetail(w, http.StatusTooManyRequests, msgThrottled)
	return false
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
