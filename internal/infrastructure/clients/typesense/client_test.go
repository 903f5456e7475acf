package typesense

import (
	"context"
	"os"
	"testing"

	"github.com/broki/marketplace-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesSchema(t *testing.T) {
	schema := PropertiesSchema()

	assert.Equal(t, PropertiesCollection, schema.Name)
	require.NotNil(t, schema.DefaultSortingField)
	assert.Equal(t, "price", *schema.DefaultSortingField)

	names := make([]string, 0, len(schema.Fields))
	infix := map[string]bool{}
	for _, f := range schema.Fields {
		names = append(names, f.Name)
		infix[f.Name] = f.Infix != nil && *f.Infix
	}
	assert.Contains(t, names, "city_name")
	assert.Contains(t, names, "status")
	assert.True(t, infix["name"])
	assert.True(t, infix["address"])
	assert.True(t, infix["city_name"])
}

func TestClient_Integration(t *testing.T) {
	url := os.Getenv("TYPESENSE_TEST_URL")
	if url == "" {
		t.Skip("TYPESENSE_TEST_URL not set")
	}

	client, err := NewClient(&config.TypesenseConfig{URL: url, APIKey: os.Getenv("TYPESENSE_API_KEY")})
	require.NoError(t, err)

	assert.NoError(t, client.InitSchema(context.Background()))
	// Second call finds the existing collection.
	assert.NoError(t, client.InitSchema(context.Background()))
}
