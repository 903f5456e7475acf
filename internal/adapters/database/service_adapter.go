package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

// ServiceAdapter implements the ServiceRepository interface
type ServiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewServiceAdapter creates a new service adapter
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		client: client,
		db:     newDialect(client),
	}
}

func serviceColumns() []interface{} {
	cols := []string{
		"id", "name", "category_id", "subcategory_id", "provider_id", "price", "type",
		"discount", "status", "description", "is_featured", "total_review", "total_rating",
		"is_favourite", "attchment_extension", "is_slot", "visit_type",
		"is_enable_advance_payment", "advance_payment_amount", "moq",
	}
	out := make([]interface{}, 0, len(cols)+5)
	for _, c := range cols {
		out = append(out, goqu.I("s."+c))
	}
	return append(out,
		goqu.L(`to_char("s"."duration", 'HH24:MI:SS')`).As("duration"),
		goqu.I("sc.name").As("category_name"),
		goqu.I("ssc.name").As("subcategory_name"),
		goqu.I("pr.display_name").As("provider_name"),
		goqu.I("pr.profile_image").As("provider_image"),
	)
}

func (a *ServiceAdapter) base() *goqu.SelectDataset {
	return a.db.From(goqu.T("services").As("s")).
		LeftJoin(goqu.T("service_categories").As("sc"), goqu.On(goqu.I("sc.id").Eq(goqu.I("s.category_id")))).
		LeftJoin(goqu.T("service_subcategories").As("ssc"), goqu.On(goqu.I("ssc.id").Eq(goqu.I("s.subcategory_id")))).
		LeftJoin(goqu.T("providers").As("pr"), goqu.On(goqu.I("pr.id").Eq(goqu.I("s.provider_id"))))
}

// List returns one page of services with the given status and the total count
func (a *ServiceAdapter) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.Service, int, error) {
	countSQL, countArgs, err := a.db.Select(goqu.COUNT("*")).From("services").Where(goqu.Ex{"status": filter.Status}).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count services", err)
	}

	ds := a.base().Select(serviceColumns()...).
		Where(goqu.I("s.status").Eq(filter.Status)).
		Order(goqu.I("s.id").Asc())

	services, err := a.selectServices(ctx, paginate(ds, filter.Limit, filter.Offset))
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

// PriceRange returns the highest and lowest service price
func (a *ServiceAdapter) PriceRange(ctx context.Context) (entities.Amount, entities.Amount, bool, error) {
	query, args, err := a.db.Select(
		goqu.MAX("price"), goqu.MIN("price"),
	).From("services").ToSQL()
	if err != nil {
		return entities.Amount{}, entities.Amount{}, false, apperrors.NewInternalError("failed to build query", err)
	}

	var max, min *entities.Amount
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&max, &min); err != nil {
		return entities.Amount{}, entities.Amount{}, false, apperrors.NewInternalError("failed to get service price range", err)
	}
	if max == nil || min == nil {
		return entities.Amount{}, entities.Amount{}, false, nil
	}
	return *max, *min, true, nil
}

// GetByID retrieves a service with its attachments and slots
func (a *ServiceAdapter) GetByID(ctx context.Context, id int64) (*entities.Service, error) {
	services, err := a.selectServices(ctx, a.base().Select(serviceColumns()...).Where(goqu.I("s.id").Eq(id)))
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %d not found", id))
	}
	return services[0], nil
}

// ListRelated returns other services of the same category. A nil category
// matches services without a category.
func (a *ServiceAdapter) ListRelated(ctx context.Context, categoryID *int64, excludeID int64, limit int) ([]*entities.Service, error) {
	ds := a.base().Select(serviceColumns()...).Where(goqu.I("s.id").Neq(excludeID))
	if categoryID != nil {
		ds = ds.Where(goqu.I("s.category_id").Eq(*categoryID))
	} else {
		ds = ds.Where(goqu.I("s.category_id").IsNull())
	}
	ds = ds.Order(goqu.I("s.id").Asc())

	return a.selectServices(ctx, paginate(ds, limit, 0))
}

func (a *ServiceAdapter) selectServices(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Service, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build service query", err)
	}

	services := []*entities.Service{}
	if err := a.client.DBX().SelectContext(ctx, &services, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}

	if err := a.loadChildren(ctx, services); err != nil {
		return nil, err
	}
	return services, nil
}

type serviceAttachmentRow struct {
	ServiceID int64 `db:"service_id"`
	entities.Attachment
}

// loadChildren fills attachments and slots of services with two queries.
func (a *ServiceAdapter) loadChildren(ctx context.Context, services []*entities.Service) error {
	if len(services) == 0 {
		return nil
	}

	ids := make([]int64, len(services))
	byID := make(map[int64]*entities.Service, len(services))
	for i, s := range services {
		ids[i] = s.ID
		byID[s.ID] = s
		s.Attachments = []entities.Attachment{}
		s.Slots = []entities.Slot{}
	}

	query, args, err := a.db.Select(goqu.I("sa.service_id"), goqu.I("att.id"), goqu.I("att.url")).
		From(goqu.T("service_attachments").As("sa")).
		Join(goqu.T("attachments").As("att"), goqu.On(goqu.I("att.id").Eq(goqu.I("sa.attachment_id")))).
		Where(goqu.I("sa.service_id").In(ids)).
		Order(goqu.I("att.id").Asc()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build attachment query", err)
	}

	var attachments []serviceAttachmentRow
	if err := a.client.DBX().SelectContext(ctx, &attachments, query, args...); err != nil {
		return apperrors.NewInternalError("failed to load service attachments", err)
	}
	for _, row := range attachments {
		if s, ok := byID[row.ServiceID]; ok {
			s.Attachments = append(s.Attachments, row.Attachment)
		}
	}

	query, args, err = a.db.Select("id", "service_id", "day", "slot").From("slots").
		Where(goqu.Ex{"service_id": ids}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build slot query", err)
	}

	var slots []entities.Slot
	if err := a.client.DBX().SelectContext(ctx, &slots, query, args...); err != nil {
		return apperrors.NewInternalError("failed to load service slots", err)
	}
	for _, slot := range slots {
		if s, ok := byID[slot.ServiceID]; ok {
			s.Slots = append(s.Slots, slot)
		}
	}

	return nil
}

type addressMappingRow struct {
	ID                int64      `db:"id"`
	ServiceID         int64      `db:"service_id"`
	ProviderAddressID int64      `db:"provider_address_id"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	AddrProviderID    int64      `db:"addr_provider_id"`
	AddrAddress       string     `db:"addr_address"`
	AddrLatitude      string     `db:"addr_latitude"`
	AddrLongitude     string     `db:"addr_longitude"`
	AddrStatus        bool       `db:"addr_status"`
	AddrCreatedAt     time.Time  `db:"addr_created_at"`
	AddrUpdatedAt     time.Time  `db:"addr_updated_at"`
	AddrDeletedAt     *time.Time `db:"addr_deleted_at"`
}

// ListAddressMappings returns the provider addresses each service is offered at
func (a *ServiceAdapter) ListAddressMappings(ctx context.Context, serviceIDs []int64) (map[int64][]entities.ServiceAddressMapping, error) {
	out := make(map[int64][]entities.ServiceAddressMapping, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return out, nil
	}

	query, args, err := a.db.Select(
		goqu.I("m.id"), goqu.I("m.service_id"), goqu.I("m.provider_address_id"),
		goqu.I("m.created_at"), goqu.I("m.updated_at"),
		goqu.I("pa.provider_id").As("addr_provider_id"),
		goqu.I("pa.address").As("addr_address"),
		goqu.I("pa.latitude").As("addr_latitude"),
		goqu.I("pa.longitude").As("addr_longitude"),
		goqu.I("pa.status").As("addr_status"),
		goqu.I("pa.created_at").As("addr_created_at"),
		goqu.I("pa.updated_at").As("addr_updated_at"),
		goqu.I("pa.deleted_at").As("addr_deleted_at"),
	).
		From(goqu.T("service_address_mappings").As("m")).
		Join(goqu.T("provider_addresses").As("pa"), goqu.On(goqu.I("pa.id").Eq(goqu.I("m.provider_address_id")))).
		Where(goqu.I("m.service_id").In(serviceIDs)).
		Order(goqu.I("m.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build address mapping query", err)
	}

	var rows []addressMappingRow
	if err := a.client.DBX().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to load service address mappings", err)
	}

	for _, r := range rows {
		out[r.ServiceID] = append(out[r.ServiceID], entities.ServiceAddressMapping{
			ID:                r.ID,
			ServiceID:         r.ServiceID,
			ProviderAddressID: r.ProviderAddressID,
			CreatedAt:         r.CreatedAt,
			UpdatedAt:         r.UpdatedAt,
			ProviderAddressMapping: &entities.ProviderAddress{
				ID:         r.ProviderAddressID,
				ProviderID: r.AddrProviderID,
				Address:    r.AddrAddress,
				Latitude:   r.AddrLatitude,
				Longitude:  r.AddrLongitude,
				Status:     r.AddrStatus,
				CreatedAt:  r.AddrCreatedAt,
				UpdatedAt:  r.AddrUpdatedAt,
				DeletedAt:  r.AddrDeletedAt,
			},
		})
	}
	return out, nil
}

// ListFAQs returns the questions of a service
func (a *ServiceAdapter) ListFAQs(ctx context.Context, serviceID int64) ([]*entities.ServiceFAQ, error) {
	query, args, err := a.db.Select(
		"id", "title", "description", "status", "service_id", "created_at", "updated_at",
	).From("service_faqs").Where(goqu.Ex{"service_id": serviceID}).Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	faqs := []*entities.ServiceFAQ{}
	if err := a.client.DBX().SelectContext(ctx, &faqs, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list service faqs", err)
	}
	return faqs, nil
}

// ListAddons returns the add-ons of a service
func (a *ServiceAdapter) ListAddons(ctx context.Context, serviceID int64) ([]*entities.ServiceAddon, error) {
	query, args, err := a.db.Select(
		goqu.I("ad.id"), goqu.I("ad.name"), goqu.I("ad.service_id"),
		goqu.I("s.name").As("service_name"),
		goqu.I("ad.price"), goqu.I("ad.status"), goqu.I("ad.serviceaddon_image"),
	).
		From(goqu.T("service_addons").As("ad")).
		Join(goqu.T("services").As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("ad.service_id")))).
		Where(goqu.I("ad.service_id").Eq(serviceID)).
		Order(goqu.I("ad.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	addons := []*entities.ServiceAddon{}
	if err := a.client.DBX().SelectContext(ctx, &addons, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list service addons", err)
	}
	return addons, nil
}

var providerColumns = []interface{}{
	"id", "first_name", "last_name", "username", "provider_id", "status", "description",
	"user_type", "email", "contact_number", "country_id", "state_id", "city_id", "city_name",
	"address", "providertype_id", "providertype", "is_featured", "display_name", "created_at",
	"updated_at", "deleted_at", "profile_image", "time_zone", "uid", "login_type",
	"service_address_id", "last_notification_seen", "providers_service_rating",
	"total_service_rating", "handyman_rating", "is_verify_provider", "is_handyman_available",
	"designation", "handymantype_id", "handyman_type", "handyman_commission",
	"known_languages", "skills", "is_favourite", "total_services_booked", "why_choose_me",
	"is_subscribe", "is_email_verified",
}

// ProviderAdapter implements the ProviderRepository interface
type ProviderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(client *postgres.Client) repositories.ProviderRepository {
	return &ProviderAdapter{client: client, db: newDialect(client)}
}

// GetByID retrieves a provider by ID
func (a *ProviderAdapter) GetByID(ctx context.Context, id int64) (*entities.Provider, error) {
	query, args, err := a.db.Select(providerColumns...).From("providers").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	provider := &entities.Provider{}
	err = a.client.DBX().GetContext(ctx, provider, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}
	return provider, nil
}

// ListTaxes returns the taxes a provider charges
func (a *ProviderAdapter) ListTaxes(ctx context.Context, providerID int64) ([]*entities.Tax, error) {
	query, args, err := a.db.Select("id", "provider_id", "title", "type", "value").From("taxes").
		Where(goqu.Ex{"provider_id": providerID}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	taxes := []*entities.Tax{}
	if err := a.client.DBX().SelectContext(ctx, &taxes, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list taxes", err)
	}
	return taxes, nil
}
