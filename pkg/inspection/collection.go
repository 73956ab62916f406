package inspection

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/tankinspect/models"
	"p9e.in/tankinspect/pkg/validation"
)

// Record is satisfied by a pointer to any model that embeds models.Base.
type Record[T any] interface {
	*T
	Identity() *models.Base
}

// owned is implemented by findings that hang off a tank.
type owned interface {
	OwnerID() uuid.UUID
}

// Filter restricts a list to rows whose column equals value.
type Filter struct {
	Column string
	Value  any
}

// uniqueRule describes a uniqueness constraint checked before writing so the
// caller gets a readable conflict. The database index still decides races.
type uniqueRule[T any] struct {
	where   func(rec *T) (string, []any)
	message string
}

// Collection is the CRUD store for one integer-keyed table.
type Collection[T any, P Record[T]] struct {
	db     *gorm.DB
	name   string
	order  []string
	unique *uniqueRule[T]
}

func newCollection[T any, P Record[T]](db *gorm.DB, name string, order ...string) *Collection[T, P] {
	return &Collection[T, P]{db: db, name: name, order: order}
}

func (c *Collection[T, P]) Name() string { return c.name }

// List returns every row matching all filters in the collection's order.
func (c *Collection[T, P]) List(ctx context.Context, filters ...Filter) ([]T, error) {
	return c.list(c.db.WithContext(ctx), filters...)
}

func (c *Collection[T, P]) list(tx *gorm.DB, filters ...Filter) ([]T, error) {
	q := tx.Model(new(T))
	for _, f := range filters {
		q = q.Where(fmt.Sprintf("%s = ?", f.Column), f.Value)
	}
	for _, o := range c.order {
		q = q.Order(o)
	}

	items := make([]T, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, classify(c.name, "list", err)
	}
	return items, nil
}

func (c *Collection[T, P]) Get(ctx context.Context, id uint) (P, error) {
	return c.get(c.db.WithContext(ctx), id)
}

func (c *Collection[T, P]) get(tx *gorm.DB, id uint) (P, error) {
	rec := P(new(T))
	if err := tx.First(rec, "id = ?", id).Error; err != nil {
		return nil, classify(c.name, "get", err)
	}
	return rec, nil
}

// Create inserts rec after checking its tank and uniqueness rule.
func (c *Collection[T, P]) Create(ctx context.Context, rec P) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.checkWrite(tx, rec, 0); err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	return observe(c.name, "create", classify(c.name, "create", err))
}

// Replace overwrites every writable column of row id with rec, keeping the
// key and creation time of the stored row.
func (c *Collection[T, P]) Replace(ctx context.Context, id uint, rec P) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := c.get(tx, id)
		if err != nil {
			return err
		}
		rec.Identity().ID = id
		rec.Identity().CreatedAt = existing.Identity().CreatedAt

		if err := c.checkWrite(tx, rec, id); err != nil {
			return err
		}
		return tx.Save(rec).Error
	})
	return observe(c.name, "update", classify(c.name, "update", err))
}

func (c *Collection[T, P]) Delete(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return observe(c.name, "delete", classify(c.name, "delete", result.Error))
	}
	if result.RowsAffected == 0 {
		return observe(c.name, "delete", fmt.Errorf("%s delete: %w", c.name, ErrNotFound))
	}
	return observe(c.name, "delete", nil)
}

// checkWrite verifies the owning tank exists and the uniqueness rule holds,
// ignoring row self when it is non-zero.
func (c *Collection[T, P]) checkWrite(tx *gorm.DB, rec P, self uint) error {
	if o, ok := any(rec).(owned); ok {
		if err := tankExists(tx, o.OwnerID()); err != nil {
			return err
		}
	}
	if c.unique == nil {
		return nil
	}

	where, args := c.unique.where((*T)(rec))
	q := tx.Model(new(T)).Where(where, args...)
	if self != 0 {
		q = q.Where("id <> ?", self)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{Resource: c.name, Message: c.unique.message}
	}
	return nil
}

func tankExists(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.Tank{}).Where("tank_unique_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return validation.Single("tank", fmt.Sprintf("Invalid pk %q - object does not exist.", id.String()))
	}
	return nil
}
