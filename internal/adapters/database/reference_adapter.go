package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

// CityAdapter implements the CityRepository interface
type CityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCityAdapter creates a new city adapter
func NewCityAdapter(client *postgres.Client) repositories.CityRepository {
	return &CityAdapter{client: client, db: newDialect(client)}
}

// List returns all cities
func (a *CityAdapter) List(ctx context.Context) ([]*entities.City, error) {
	query, args, err := a.db.Select("id", "name").From("cities").Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	cities := []*entities.City{}
	if err := a.client.DBX().SelectContext(ctx, &cities, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list cities", err)
	}
	return cities, nil
}

// GetByID retrieves a city by ID
func (a *CityAdapter) GetByID(ctx context.Context, id int64) (*entities.City, error) {
	query, args, err := a.db.Select("id", "name").From("cities").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.get(ctx, query, args, fmt.Sprintf("city with id %d not found", id))
}

// GetByName retrieves the first city whose name matches, ignoring case
func (a *CityAdapter) GetByName(ctx context.Context, name string) (*entities.City, error) {
	query, args, err := a.db.Select("id", "name").From("cities").
		Where(goqu.Func("LOWER", goqu.I("name")).Eq(strings.ToLower(name))).
		Order(goqu.I("id").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}
	return a.get(ctx, query, args, fmt.Sprintf("city %q not found", name))
}

func (a *CityAdapter) get(ctx context.Context, query string, args []interface{}, notFound string) (*entities.City, error) {
	city := &entities.City{}
	err := a.client.DBX().GetContext(ctx, city, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get city", err)
	}
	return city, nil
}

// CategoryAdapter implements the CategoryRepository interface
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{client: client, db: newDialect(client)}
}

// List returns all property categories
func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.Select("id", "name", "image").From("categories").Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	categories := []*entities.Category{}
	if err := a.client.DBX().SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	return categories, nil
}

// GetByID retrieves a category by ID
func (a *CategoryAdapter) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	query, args, err := a.db.Select("id", "name", "image").From("categories").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	category := &entities.Category{}
	err = a.client.DBX().GetContext(ctx, category, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get category", err)
	}
	return category, nil
}

// TagAdapter implements the TagRepository interface
type TagAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTagAdapter creates a new tag adapter
func NewTagAdapter(client *postgres.Client) repositories.TagRepository {
	return &TagAdapter{client: client, db: newDialect(client)}
}

// List returns one page of tags and the total number of tags
func (a *TagAdapter) List(ctx context.Context, limit, offset int) ([]*entities.Tag, int, error) {
	countSQL, countArgs, err := a.db.Select(goqu.COUNT("*")).From("tags").ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count tags", err)
	}

	ds := a.db.Select("id", "name").From("tags").Order(goqu.I("id").Asc())
	ds = paginate(ds, limit, offset)

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build list query", err)
	}

	tags := []*entities.Tag{}
	if err := a.client.DBX().SelectContext(ctx, &tags, query, args...); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list tags", err)
	}
	return tags, total, nil
}
