package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{client: client, db: newDialect(client)}
}

// ListByService returns the reviews of a service, oldest first
func (a *ReviewAdapter) ListByService(ctx context.Context, serviceID int64) ([]*entities.ServiceReview, error) {
	query, args, err := a.db.Select(
		goqu.I("r.id"), goqu.I("r.service_id"), goqu.I("r.rating"), goqu.I("r.comment"), goqu.I("r.created_at"),
		goqu.I("rc.id"), goqu.I("rc.name"), goqu.I("rc.email"), goqu.I("rc.contact"), goqu.I("rc.profile_image"),
	).
		From(goqu.T("service_reviews").As("r")).
		LeftJoin(goqu.T("review_customers").As("rc"), goqu.On(goqu.I("rc.id").Eq(goqu.I("r.customer_id")))).
		Where(goqu.I("r.service_id").Eq(serviceID)).
		Order(goqu.I("r.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.ServiceReview{}
	for rows.Next() {
		review := &entities.ServiceReview{}
		var (
			customerID            sql.NullInt64
			name, email           sql.NullString
			contact, profileImage *string
			createdAt             time.Time
		)

		err := rows.Scan(
			&review.ID,
			&review.ServiceID,
			&review.Rating,
			&review.Comment,
			&createdAt,
			&customerID,
			&name,
			&email,
			&contact,
			&profileImage,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}

		review.CreatedAt = createdAt
		if customerID.Valid {
			review.Customer = &entities.Reviewer{
				ID:           customerID.Int64,
				Name:         name.String,
				Email:        email.String,
				Contact:      contact,
				ProfileImage: profileImage,
			}
		}

		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}

	return reviews, nil
}

// CouponAdapter implements the CouponRepository interface
type CouponAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCouponAdapter creates a new coupon adapter
func NewCouponAdapter(client *postgres.Client) repositories.CouponRepository {
	return &CouponAdapter{client: client, db: newDialect(client)}
}

// Create creates a new coupon
func (a *CouponAdapter) Create(ctx context.Context, coupon *entities.Coupon) error {
	record := goqu.Record{
		"service_id":       coupon.ServiceID,
		"code":             coupon.Code,
		"discount_type":    coupon.DiscountType,
		"discount_value":   coupon.DiscountValue,
		"min_order_amount": coupon.MinOrderAmount,
		"expiry_date":      coupon.ExpiryDate,
		"is_active":        coupon.IsActive,
	}

	query, args, err := a.db.Insert("coupons").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&coupon.ID); err != nil {
		return mapWriteError(err, "failed to create coupon "+coupon.Code)
	}

	return nil
}

// ListByService returns the coupons of a service
func (a *CouponAdapter) ListByService(ctx context.Context, serviceID int64) ([]*entities.Coupon, error) {
	query, args, err := a.db.Select(
		"id", "service_id", "code", "discount_type", "discount_value",
		"min_order_amount", "expiry_date", "is_active",
	).From("coupons").Where(goqu.Ex{"service_id": serviceID}).Order(goqu.I("id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	coupons := []*entities.Coupon{}
	if err := a.client.DBX().SelectContext(ctx, &coupons, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list coupons", err)
	}
	return coupons, nil
}
