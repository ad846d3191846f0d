// Package repository scopes every database access to the owner of the records.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"gorm.io/gorm"
)

// Resource is a model that belongs to exactly one user.
type Resource interface {
	models.Expense | models.Budget
	Self() string
	Owner() string
}

// Query describes a filtered, paginated list request.
type Query struct {
	// Where is a struct of the resource type. Only the fields named in
	// Fields are used as conditions, allowing to filter for zero values.
	Where  any
	Fields []any

	// Scopes are applied in order after the owner and Where conditions.
	Scopes []func(*gorm.DB) *gorm.DB

	// Order is a list of columns to sort by, e.g. "date DESC".
	Order []string

	Offset int

	// Limit is the maximum number of records. A negative value disables the limit.
	Limit int
}

// Repository provides access to the records of one resource type.
//
// All operations require the ID of the owner and never return or modify
// records that belong to a different owner.
type Repository[T Resource] struct {
	DB *gorm.DB
}

// New returns a Repository for the resource type T.
func New[T Resource](db *gorm.DB) Repository[T] {
	return Repository[T]{DB: db}
}

// scoped returns a new session restricted to the records of the owner.
func (r Repository[T]) scoped(ctx context.Context, owner string) (*gorm.DB, error) {
	if owner == "" {
		return nil, models.ErrUnauthorized
	}

	var model T
	return r.DB.WithContext(ctx).Model(&model).Where("owner_id = ?", owner), nil
}

// Create stores a new record. The record's owner must be set.
func (r Repository[T]) Create(ctx context.Context, resource *T) error {
	if (*resource).Owner() == "" {
		return models.ErrUnauthorized
	}

	return r.DB.WithContext(ctx).Create(resource).Error
}

// createBatchSize is the number of records per INSERT statement in CreateAll.
// It keeps the bound parameters below the limits of sqlite and postgres.
const createBatchSize = 500

// CreateAll stores all records in one transaction. Every record's owner must be set.
func (r Repository[T]) CreateAll(ctx context.Context, resources []T) error {
	for _, resource := range resources {
		if resource.Owner() == "" {
			return models.ErrUnauthorized
		}
	}

	if len(resources) == 0 {
		return nil
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&resources, createBatchSize).Error
	})
}

// Get returns the record with the ID if it belongs to the owner.
func (r Repository[T]) Get(ctx context.Context, owner string, id uuid.UUID) (T, error) {
	var resource T

	q, err := r.scoped(ctx, owner)
	if err != nil {
		return resource, err
	}

	err = q.First(&resource, "id = ?", id).Error
	return resource, notFound(err, resource)
}

// filtered returns a session with all conditions of the query applied.
func (r Repository[T]) filtered(ctx context.Context, owner string, query Query) (*gorm.DB, error) {
	q, err := r.scoped(ctx, owner)
	if err != nil {
		return nil, err
	}

	if query.Where != nil && len(query.Fields) > 0 {
		q = q.Where(query.Where, query.Fields...)
	}

	return q.Scopes(query.Scopes...), nil
}

// List returns the records of the owner matching the query together with
// the total number of matching records, ignoring offset and limit.
func (r Repository[T]) List(ctx context.Context, owner string, query Query) ([]T, int64, error) {
	q, err := r.filtered(ctx, owner, query)
	if err != nil {
		return nil, 0, err
	}

	for _, o := range query.Order {
		q = q.Order(o)
	}

	limit := query.Limit
	if limit == 0 {
		limit = -1
	}

	resources := make([]T, 0)
	err = q.Offset(query.Offset).Limit(limit).Find(&resources).Error
	if err != nil {
		return nil, 0, err
	}

	q, err = r.filtered(ctx, owner, query)
	if err != nil {
		return nil, 0, err
	}

	var count int64
	err = q.Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	return resources, count, nil
}

// Update writes the selected fields of values to the record with the ID.
//
// fields contains the struct field names to update. Zero values of
// selected fields are written, too.
func (r Repository[T]) Update(ctx context.Context, owner string, id uuid.UUID, fields []any, values T) (T, error) {
	existing, err := r.Get(ctx, owner, id)
	if err != nil {
		return existing, err
	}

	if len(fields) > 0 {
		err = r.DB.WithContext(ctx).
			Model(&values).
			Where("id = ? AND owner_id = ?", id, owner).
			Select("", fields...).
			Updates(&values).Error
		if err != nil {
			return existing, err
		}
	}

	return r.Get(ctx, owner, id)
}

// Delete removes the record with the ID.
func (r Repository[T]) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	resource, err := r.Get(ctx, owner, id)
	if err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Where("owner_id = ?", owner).Delete(&resource).Error
}

// notFound makes sure that missing records are always reported as
// models.ErrResourceNotFound, also for query paths without the callback.
func notFound[T Resource](err error, resource T) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, resourceName(resource))
	}

	return err
}

func resourceName[T Resource](resource T) string {
	return strings.ToLower(resource.Self())
}

// Contains limits a query to records where the column contains the value.
// An empty value matches records where the column is empty.
func Contains(column, value string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db.Where(fmt.Sprintf("%s = ''", column))
		}

		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), "%"+strings.ToLower(value)+"%")
	}
}
