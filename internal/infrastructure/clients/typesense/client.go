package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/broki/marketplace-api/pkg/config"
	"github.com/broki/marketplace-api/pkg/retry"
	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	PropertiesCollection = "properties"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.DoWithLog(
		context.Background(),
		retry.DefaultConfig(),
		"Typesense",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("Typesense connection attempt failed")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("Connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// PropertiesSchema is the collection schema of the property index.
func PropertiesSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: PropertiesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string", Infix: pointer.True()},
			{Name: "address", Type: "string", Infix: pointer.True()},
			{Name: "city_name", Type: "string", Facet: pointer.True(), Infix: pointer.True()},
			{Name: "category_id", Type: "int64", Facet: pointer.True()},
			{Name: "price", Type: "int64"},
			{Name: "sqft", Type: "int32"},
			{Name: "property_for", Type: "int32", Facet: pointer.True()},
			{Name: "premium_property", Type: "bool"},
			{Name: "status", Type: "bool"},
		},
		DefaultSortingField: pointer.String("price"),
	}
}

// InitSchema ensures the properties collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	collections, err := c.client.Collections().Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve collections: %w", err)
	}

	for _, col := range collections {
		if col.Name == PropertiesCollection {
			return nil
		}
	}

	if _, err := c.client.Collections().Create(ctx, PropertiesSchema()); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", PropertiesCollection).Msg("Created Typesense collection")
	return nil
}
