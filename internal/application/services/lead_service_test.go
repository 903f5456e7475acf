package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/mocks"
)

func TestLeadService_SubmitOutletForm(t *testing.T) {
	leads := new(mocks.LeadRepository)
	form := &entities.OutletForm{Name: "Ravi", OutletType: "cafe"}
	leads.On("CreateOutletForm", mock.Anything, form).Return(nil)

	assert.NoError(t, NewLeadService(leads).SubmitOutletForm(context.Background(), form))
	leads.AssertExpectations(t)
}

func TestLeadService_SubmitContactForm_Error(t *testing.T) {
	leads := new(mocks.LeadRepository)
	leads.On("CreateContactForm", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	err := NewLeadService(leads).SubmitContactForm(context.Background(), &entities.ContactForm{})

	assert.EqualError(t, err, "insert failed")
}
