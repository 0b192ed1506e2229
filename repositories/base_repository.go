package repositories

import (
	"context"
	"strings"

	"formly.link/pkg/queryparams"

	"gorm.io/gorm"
)

// IBaseRepository tüm modeller için ortak okuma ve sıralama işlemleri.
type IBaseRepository[T any] interface {
	FindByID(ctx context.Context, id uint, preloads ...string) (*T, error)
	Count(ctx context.Context, query string, args ...any) (int64, error)
	SetAllowedSortColumns(columns []string)
	ApplyListParams(db *gorm.DB, params queryparams.ListParams) *gorm.DB
}

// BaseRepository IBaseRepository arayüzünü uygular.
type BaseRepository[T any] struct {
	db          *gorm.DB
	allowedSort map[string]struct{}
}

// NewBaseRepository verilen bağlantı için generik repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSort: map[string]struct{}{"id": {}, "created_at": {}}}
}

func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSort = make(map[string]struct{}, len(columns))
	for _, c := range columns {
		r.allowedSort[c] = struct{}{}
	}
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint, preloads ...string) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var entity T
	q := dbFor(ctx, r.db)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&entity, id).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	q := dbFor(ctx, r.db).Model(new(T))
	if query != "" {
		q = q.Where(query, args...)
	}
	err := q.Count(&count).Error
	return count, err
}

// ApplyListParams izin verilen sıralamayı ve sayfalamayı uygular.
// İzin verilmeyen sıralama alanı created_at'e düşer.
func (r *BaseRepository[T]) ApplyListParams(db *gorm.DB, params queryparams.ListParams) *gorm.DB {
	sortBy := params.SortBy
	if _, ok := r.allowedSort[sortBy]; !ok {
		sortBy = queryparams.DefaultSortBy
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	return db.Order(sortBy + " " + orderBy).Limit(params.PerPage).Offset(params.CalculateOffset())
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
