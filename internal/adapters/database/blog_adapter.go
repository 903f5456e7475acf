package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/broki/marketplace-api/internal/domain/entities"
	"github.com/broki/marketplace-api/internal/domain/repositories"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

var blogColumns = []interface{}{
	"id", "name", "description", "status", "article_image", "created_at", "updated_at",
}

// BlogAdapter implements the BlogRepository interface
type BlogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBlogAdapter creates a new blog adapter
func NewBlogAdapter(client *postgres.Client) repositories.BlogRepository {
	return &BlogAdapter{client: client, db: newDialect(client)}
}

// ListPublished returns one page of published articles, newest first
func (a *BlogAdapter) ListPublished(ctx context.Context, limit, offset int) ([]*entities.Blog, int, error) {
	countSQL, countArgs, err := a.db.Select(goqu.COUNT("*")).From("blogs").Where(goqu.Ex{"status": true}).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count articles", err)
	}

	ds := a.db.Select(blogColumns...).From("blogs").
		Where(goqu.Ex{"status": true}).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc())

	query, args, err := paginate(ds, limit, offset).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build list query", err)
	}

	blogs := []*entities.Blog{}
	if err := a.client.DBX().SelectContext(ctx, &blogs, query, args...); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to list articles", err)
	}

	if err := a.loadTags(ctx, blogs); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// GetByID retrieves an article regardless of its status
func (a *BlogAdapter) GetByID(ctx context.Context, id int64) (*entities.Blog, error) {
	query, args, err := a.db.Select(blogColumns...).From("blogs").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	blog := &entities.Blog{}
	err = a.client.DBX().GetContext(ctx, blog, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("blog with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get article", err)
	}

	if err := a.loadTags(ctx, []*entities.Blog{blog}); err != nil {
		return nil, err
	}
	return blog, nil
}

type blogTagRow struct {
	BlogID int64 `db:"blog_id"`
	entities.Tag
}

func (a *BlogAdapter) loadTags(ctx context.Context, blogs []*entities.Blog) error {
	if len(blogs) == 0 {
		return nil
	}

	ids := make([]int64, len(blogs))
	byID := make(map[int64]*entities.Blog, len(blogs))
	for i, b := range blogs {
		ids[i] = b.ID
		byID[b.ID] = b
		b.Tags = []entities.Tag{}
	}

	query, args, err := a.db.Select(goqu.I("bt.blog_id"), goqu.I("t.id"), goqu.I("t.name")).
		From(goqu.T("blog_tags").As("bt")).
		Join(goqu.T("tags").As("t"), goqu.On(goqu.I("t.id").Eq(goqu.I("bt.tag_id")))).
		Where(goqu.I("bt.blog_id").In(ids)).
		Order(goqu.I("t.id").Asc()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build tag query", err)
	}

	var rows []blogTagRow
	if err := a.client.DBX().SelectContext(ctx, &rows, query, args...); err != nil {
		return apperrors.NewInternalError("failed to load article tags", err)
	}
	for _, row := range rows {
		if b, ok := byID[row.BlogID]; ok {
			b.Tags = append(b.Tags, row.Tag)
		}
	}
	return nil
}
