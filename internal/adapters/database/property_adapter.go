package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

var propertyOrderFields = map[string]bool{
	"price":            true,
	"sqft":             true,
	"premium_property": true,
}

// PropertyAdapter implements the PropertyRepository interface
type PropertyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPropertyAdapter creates a new property adapter
func NewPropertyAdapter(client *postgres.Client) repositories.PropertyRepository {
	return &PropertyAdapter{
		client: client,
		db:     newDialect(client),
	}
}

func propertyColumns() []interface{} {
	cols := []string{
		"id", "name", "category_id", "price", "price_format", "address", "description",
		"status", "premium_property", "price_duration", "property_image", "property_for",
		"advertisement_property", "advertisement_property_date", "city_id", "sqft",
		"brand_name", "current_rental", "monthly_sale", "age_of_property", "latitude",
		"longitude", "country", "state", "customer_id",
	}
	out := make([]interface{}, 0, len(cols)+2)
	for _, c := range cols {
		out = append(out, goqu.I("p."+c))
	}
	return append(out,
		goqu.I("c.name").As("city_name"),
		goqu.I("cat.name").As("category_name"),
	)
}

func (a *PropertyAdapter) base() *goqu.SelectDataset {
	return a.db.From(goqu.T("properties").As("p")).
		Join(goqu.T("cities").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("p.city_id")))).
		Join(goqu.T("categories").As("cat"), goqu.On(goqu.I("cat.id").Eq(goqu.I("p.category_id"))))
}

// Create creates a new property
func (a *PropertyAdapter) Create(ctx context.Context, property *entities.Property) error {
	record := goqu.Record{
		"name":                        property.Name,
		"category_id":                 property.CategoryID,
		"price":                       property.Price,
		"price_format":                property.PriceFormat,
		"address":                     property.Address,
		"description":                 property.Description,
		"status":                      property.Status,
		"premium_property":            property.PremiumProperty,
		"price_duration":              property.PriceDuration,
		"property_image":              property.PropertyImage,
		"property_for":                property.PropertyFor,
		"advertisement_property":      property.AdvertisementProperty,
		"advertisement_property_date": property.AdvertisementPropertyDate,
		"city_id":                     property.CityID,
		"sqft":                        property.Sqft,
		"brand_name":                  property.BrandName,
		"current_rental":              property.CurrentRental,
		"monthly_sale":                property.MonthlySale,
		"age_of_property":             property.AgeOfProperty,
		"latitude":                    property.Latitude,
		"longitude":                   property.Longitude,
		"country":                     property.Country,
		"state":                       property.State,
		"customer_id":                 property.CustomerID,
	}

	query, args, err := a.db.Insert("properties").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&property.ID); err != nil {
		return mapWriteError(err, "failed to create property")
	}

	return nil
}

// GetByID retrieves a property with its gallery, amenities and customer
func (a *PropertyAdapter) GetByID(ctx context.Context, id int64) (*entities.Property, error) {
	query, args, err := a.base().Select(propertyColumns()...).Where(goqu.I("p.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	property := &entities.Property{}
	err = a.client.DBX().GetContext(ctx, property, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("property with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get property", err)
	}

	if property.Gallery, err = a.gallery(ctx, id); err != nil {
		return nil, err
	}
	if property.Amenities, err = a.amenities(ctx, id); err != nil {
		return nil, err
	}
	if property.CustomerID != nil {
		if property.Customer, err = a.customer(ctx, *property.CustomerID); err != nil {
			return nil, err
		}
	}

	return property, nil
}

func (a *PropertyAdapter) gallery(ctx context.Context, propertyID int64) ([]entities.PropertyGallery, error) {
	query, args, err := a.db.Select("id", "property_id", "image_url").From("property_gallery").
		Where(goqu.Ex{"property_id": propertyID}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build gallery query", err)
	}

	gallery := []entities.PropertyGallery{}
	if err := a.client.DBX().SelectContext(ctx, &gallery, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to load property gallery", err)
	}
	return gallery, nil
}

func (a *PropertyAdapter) amenities(ctx context.Context, propertyID int64) ([]entities.PropertyAmenity, error) {
	query, args, err := a.db.Select("id", "property_id", "name", "type", "value", "amenity_image").From("property_amenities").
		Where(goqu.Ex{"property_id": propertyID}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build amenities query", err)
	}

	amenities := []entities.PropertyAmenity{}
	if err := a.client.DBX().SelectContext(ctx, &amenities, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to load property amenities", err)
	}
	return amenities, nil
}

func (a *PropertyAdapter) customer(ctx context.Context, id int64) (*entities.Customer, error) {
	query, args, err := a.db.Select(
		"id", "first_name", "last_name", "email", "contact_number", "profile_image", "display_name",
	).From("customers").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build customer query", err)
	}

	customer := &entities.Customer{}
	err = a.client.DBX().GetContext(ctx, customer, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load property customer", err)
	}
	return customer, nil
}

// List returns one page of properties matching filter and the total count
func (a *PropertyAdapter) List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, int, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []*entities.Property{}, 0, nil
	}

	ds := a.base()
	for _, cond := range propertyConditions(filter) {
		ds = ds.Where(cond)
	}

	order := make([]exp.OrderedExpression, 0, len(filter.OrderBy)+1)
	for _, o := range filter.OrderBy {
		if !propertyOrderFields[o.Field] {
			continue
		}
		if o.Desc {
			order = append(order, goqu.I("p."+o.Field).Desc())
		} else {
			order = append(order, goqu.I("p."+o.Field).Asc())
		}
	}
	order = append(order, goqu.I("p.id").Asc())

	return a.page(ctx, ds, order, filter.Limit, filter.Offset)
}

// ListNearby returns one page of properties in the named city
func (a *PropertyAdapter) ListNearby(ctx context.Context, filter repositories.NearbyFilter) ([]*entities.Property, int, error) {
	ds := a.base().Where(goqu.Func("LOWER", goqu.I("c.name")).Eq(strings.ToLower(filter.CityName)))
	if filter.ExcludeID != nil {
		ds = ds.Where(goqu.I("p.id").Neq(*filter.ExcludeID))
	}

	return a.page(ctx, ds, []exp.OrderedExpression{goqu.I("p.id").Asc()}, filter.Limit, filter.Offset)
}

func (a *PropertyAdapter) page(ctx context.Context, ds *goqu.SelectDataset, order []exp.OrderedExpression, limit, offset int) ([]*entities.Property, int, error) {
	countSQL, countArgs, err := ds.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count properties", err)
	}

	query, args, err := paginate(ds.Select(propertyColumns()...).Order(order...), limit, offset).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build list query", err)
	}

	properties := []*entities.Property{}
	if err := a.client.DBX().SelectContext(ctx, &properties, query, args...); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list properties", err)
	}

	return properties, total, nil
}

func propertyConditions(filter repositories.PropertyFilter) []exp.Expression {
	var conds []exp.Expression

	if filter.OnlyActive {
		conds = append(conds, goqu.I("p.status").IsTrue())
	}
	if filter.CityID != nil {
		conds = append(conds, goqu.I("p.city_id").Eq(*filter.CityID))
	}
	if filter.CategoryID != nil {
		conds = append(conds, goqu.I("p.category_id").Eq(*filter.CategoryID))
	}
	if filter.PriceMin != nil {
		conds = append(conds, goqu.I("p.price").Gte(*filter.PriceMin))
	}
	if filter.PriceMax != nil {
		conds = append(conds, goqu.I("p.price").Lte(*filter.PriceMax))
	}
	if filter.SqftMin != nil {
		conds = append(conds, goqu.I("p.sqft").Gte(*filter.SqftMin))
	}
	if filter.SqftMax != nil {
		conds = append(conds, goqu.I("p.sqft").Lte(*filter.SqftMax))
	}
	if filter.PropertyFor != nil {
		conds = append(conds, goqu.I("p.property_for").Eq(*filter.PropertyFor))
	}

	switch {
	case filter.IDs != nil:
		conds = append(conds, goqu.I("p.id").In(filter.IDs))
	case filter.Search != "":
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		conds = append(conds, goqu.Or(
			goqu.I("p.name").ILike(pattern),
			goqu.I("p.address").ILike(pattern),
			goqu.I("c.name").ILike(pattern),
		))
	}

	return conds
}

// likeEscaper makes LIKE wildcards in user input match literally. Postgres
// uses backslash as the default LIKE escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
