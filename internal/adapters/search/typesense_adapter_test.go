package search

import (
	"testing"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestPropertyDocument(t *testing.T) {
	property := &entities.Property{
		ID:              42,
		Name:            "High Street Retail",
		Address:         "12 MG Road",
		CityName:        "Pune",
		CategoryID:      3,
		Price:           250000,
		Sqft:            1200,
		PropertyFor:     entities.PropertyForRent,
		PremiumProperty: true,
		Status:          true,
	}

	doc := propertyDocument(property)

	assert.Equal(t, "42", doc["id"])
	assert.Equal(t, "Pune", doc["city_name"])
	assert.Equal(t, int64(250000), doc["price"])
	assert.Equal(t, true, doc["premium_property"])
	assert.Equal(t, entities.PropertyForRent, doc["property_for"])
}

func TestDocumentID(t *testing.T) {
	id, ok := documentID(map[string]interface{}{"id": "17"})
	assert.True(t, ok)
	assert.Equal(t, int64(17), id)

	_, ok = documentID(map[string]interface{}{"id": "abc"})
	assert.False(t, ok)

	_, ok = documentID(map[string]interface{}{})
	assert.False(t, ok)
}
