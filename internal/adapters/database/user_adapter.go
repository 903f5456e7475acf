package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

var userColumns = []interface{}{
	"id", "username", "email", "first_name", "last_name", "is_active", "date_joined",
}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     newDialect(client),
	}
}

// Create creates a new user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now().UTC()
	}

	record := goqu.Record{
		"username":    user.Username,
		"email":       user.Email,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"is_active":   user.IsActive,
		"date_joined": user.DateJoined,
	}

	query, args, err := a.db.Insert("users").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		return mapWriteError(err, "failed to create user")
	}

	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return a.getWhere(ctx, goqu.Ex{"id": id}, fmt.Sprintf("user with id %d not found", id))
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getWhere(ctx, lowerEmail(email), fmt.Sprintf("user with email %s not found", email))
}

// ExistsByEmail reports whether any user has the given email
func (a *UserAdapter) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).From("users").Where(lowerEmail(email)).ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check user email", err)
	}
	return count > 0, nil
}

func (a *UserAdapter) getWhere(ctx context.Context, where exp.Expression, notFound string) (*entities.User, error) {
	query, args, err := a.db.Select(userColumns...).From("users").Where(where).Order(goqu.I("id").Asc()).Limit(1).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	err = a.client.DBX().GetContext(ctx, user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

func lowerEmail(email string) exp.Expression {
	return goqu.Func("LOWER", goqu.I("email")).Eq(strings.ToLower(strings.TrimSpace(email)))
}

// LeadAdapter implements the LeadRepository interface
type LeadAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLeadAdapter creates a new lead adapter
func NewLeadAdapter(client *postgres.Client) repositories.LeadRepository {
	return &LeadAdapter{
		client: client,
		db:     newDialect(client),
	}
}

// CreateOutletForm stores an outlet enquiry
func (a *LeadAdapter) CreateOutletForm(ctx context.Context, form *entities.OutletForm) error {
	record := goqu.Record{
		"name":        form.Name,
		"phone":       form.Phone,
		"email":       form.Email,
		"outlet_type": form.OutletType,
		"location":    form.Location,
		"brand":       form.Brand,
		"max_budget":  form.MaxBudget,
		"min_size":    form.MinSize,
	}
	return a.insert(ctx, "outlet_forms", record, &form.ID)
}

// CreateContactForm stores a contact request
func (a *LeadAdapter) CreateContactForm(ctx context.Context, form *entities.ContactForm) error {
	if form.CreatedAt.IsZero() {
		form.CreatedAt = time.Now().UTC()
	}
	record := goqu.Record{
		"name":        form.Name,
		"phone":       form.Phone,
		"email":       form.Email,
		"outlet_type": form.OutletType,
		"location":    form.Location,
		"brand_name":  form.BrandName,
		"created_at":  form.CreatedAt,
	}
	return a.insert(ctx, "contact_forms", record, &form.ID)
}

func (a *LeadAdapter) insert(ctx context.Context, table string, record goqu.Record, id *int64) error {
	query, args, err := a.db.Insert(table).Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(id); err != nil {
		return mapWriteError(err, "failed to save "+table)
	}
	return nil
}
