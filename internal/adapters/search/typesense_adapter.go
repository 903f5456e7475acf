package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/providers"
	tsclient "github.com/broki/marketplace-api/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	// Typesense caps per_page at 250.
	maxPerPage = 250

	queryBy = "name,address,city_name"
)

// PropertyIndex implements property search using Typesense
type PropertyIndex struct {
	client *tsclient.Client
}

var _ providers.PropertySearchIndex = (*PropertyIndex)(nil)

// NewPropertyIndex creates a new Typesense property index
func NewPropertyIndex(client *tsclient.Client) *PropertyIndex {
	return &PropertyIndex{client: client}
}

// Index upserts a property document
func (a *PropertyIndex) Index(ctx context.Context, property *entities.Property) error {
	_, err := a.client.Client().Collection(tsclient.PropertiesCollection).Documents().Upsert(ctx, propertyDocument(property))
	if err != nil {
		return fmt.Errorf("failed to index property %d: %w", property.ID, err)
	}
	return nil
}

// Search returns ids of every active property whose name, address or city
// contains each query token. Typos and extra prefixes are not tolerated so
// matches stay in line with a substring search.
func (a *PropertyIndex) Search(ctx context.Context, query string) ([]int64, error) {
	ids := []int64{}
	for page := 1; ; page++ {
		params := &api.SearchCollectionParams{
			Q:        pointer.String(query),
			QueryBy:  pointer.String(queryBy),
			FilterBy: pointer.String("status:=true"),
			Infix:    pointer.String("always,always,always"),
			NumTypos: pointer.String("0"),
			Page:     pointer.Int(page),
			PerPage:  pointer.Int(maxPerPage),
		}

		result, err := a.client.Client().Collection(tsclient.PropertiesCollection).Documents().Search(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to search properties (page %d): %w", page, err)
		}
		if result.Hits == nil || len(*result.Hits) == 0 {
			return ids, nil
		}

		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			if id, ok := documentID(*hit.Document); ok {
				ids = append(ids, id)
			}
		}

		if len(*result.Hits) < maxPerPage || (result.Found != nil && page*maxPerPage >= *result.Found) {
			return ids, nil
		}
	}
}

func propertyDocument(p *entities.Property) map[string]interface{} {
	return map[string]interface{}{
		"id":               strconv.FormatInt(p.ID, 10),
		"name":             p.Name,
		"address":          p.Address,
		"city_name":        p.CityName,
		"category_id":      p.CategoryID,
		"price":            p.Price,
		"sqft":             p.Sqft,
		"property_for":     p.PropertyFor,
		"premium_property": p.PremiumProperty,
		"status":           p.Status,
	}
}

func documentID(doc map[string]interface{}) (int64, bool) {
	raw, ok := doc["id"].(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
