package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/mocks"
)

func properties(ids ...int64) []*entities.Property {
	out := make([]*entities.Property, 0, len(ids))
	for _, id := range ids {
		out = append(out, &entities.Property{ID: id})
	}
	return out
}

func TestReindex_PagesThroughAllProperties(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	index := new(mocks.PropertySearchIndex)

	first := make([]int64, batchSize)
	for i := range first {
		first[i] = int64(i + 1)
	}
	repo.On("List", mock.Anything, repositories.PropertyFilter{Limit: batchSize, Offset: 0}).Return(properties(first...), batchSize+2, nil)
	repo.On("List", mock.Anything, repositories.PropertyFilter{Limit: batchSize, Offset: batchSize}).Return(properties(501, 502), batchSize+2, nil)

	index.On("Index", mock.Anything, mock.MatchedBy(func(p *entities.Property) bool { return p.ID == 7 })).Return(errors.New("typesense unavailable"))
	index.On("Index", mock.Anything, mock.Anything).Return(nil)

	indexed, failed, err := reindex(context.Background(), repo, index)

	require.NoError(t, err)
	assert.Equal(t, batchSize+1, indexed)
	assert.Equal(t, 1, failed)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestReindex_ListError(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("connection refused"))

	_, _, err := reindex(context.Background(), repo, new(mocks.PropertySearchIndex))

	assert.ErrorContains(t, err, "offset 0")
}

func TestReindex_Empty(t *testing.T) {
	repo := new(mocks.PropertyRepository)
	repo.On("List", mock.Anything, mock.Anything).Return([]*entities.Property{}, 0, nil)

	indexed, failed, err := reindex(context.Background(), repo, new(mocks.PropertySearchIndex))

	require.NoError(t, err)
	assert.Zero(t, indexed)
	assert.Zero(t, failed)
}
