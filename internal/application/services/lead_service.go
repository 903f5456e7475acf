package services

import (
	"context"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
)

// LeadService stores inbound enquiries
type LeadService struct {
	leads repositories.LeadRepository
}

// NewLeadService creates a new lead service
func NewLeadService(leads repositories.LeadRepository) *LeadService {
	return &LeadService{leads: leads}
}

// SubmitOutletForm stores an outlet enquiry
func (s *LeadService) SubmitOutletForm(ctx context.Context, form *entities.OutletForm) error {
	if err := s.leads.CreateOutletForm(ctx, form); err != nil {
		return err
	}
	observability.LoggerFromContext(ctx).Info().Int64("form_id", form.ID).Str("outlet_type", form.OutletType).Msg("Outlet form submitted")
	return nil
}

// SubmitContactForm stores a contact request
func (s *LeadService) SubmitContactForm(ctx context.Context, form *entities.ContactForm) error {
	if err := s.leads.CreateContactForm(ctx, form); err != nil {
		return err
	}
	observability.LoggerFromContext(ctx).Info().Int64("form_id", form.ID).Msg("Contact form submitted")
	return nil
}
