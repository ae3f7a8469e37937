package repo

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/online_bookstore/internal/logging"
)

var (
	// ErrStorageUnavailable is returned by writes when the database cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrConflict is returned when a write breaks a unique constraint.
	ErrConflict = errors.New("conflict")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	return q
}

// IsUnavailable reports whether err means the store could not be reached at all,
// as opposed to a query that reached the store and failed.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStorageUnavailable) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "bad connection")
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicate(err) && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if IsUnavailable(err) && !errors.Is(err, ErrStorageUnavailable) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

// degrade swallows unavailability on read paths so callers see an empty
// result instead of an error.
func degrade(ctx context.Context, op string, err error) error {
	if IsUnavailable(err) {
		logging.FromContext(ctx).Warn("storage_unavailable", "op", op, "error", err)
		return nil
	}
	return err
}

func list[T any](ctx context.Context, op string, q *gorm.DB) ([]T, error) {
	items := []T{}
	if err := q.Find(&items).Error; err != nil {
		if derr := degrade(ctx, op, err); derr != nil {
			return nil, derr
		}
		return []T{}, nil
	}
	return items, nil
}

func firstStrict[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var v T
	if err := db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func getByID[T any](ctx context.Context, db *gorm.DB, op string, id uint) (*T, error) {
	v, err := firstStrict[T](ctx, db, id)
	if err != nil {
		return nil, degrade(ctx, op, err)
	}
	return v, nil
}

func create[T any](ctx context.Context, db *gorm.DB, v *T) (*T, error) {
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, writeErr(err)
	}
	return v, nil
}

// updateByID applies fields to the row and returns the fresh row. An unknown id
// is a no-op that yields (nil, nil).
func updateByID[T any](ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (*T, error) {
	if len(fields) > 0 {
		if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, writeErr(err)
		}
	}
	v, err := firstStrict[T](ctx, db, id)
	if err != nil {
		return nil, writeErr(err)
	}
	return v, nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) error {
	return writeErr(db.WithContext(ctx).Delete(new(T), id).Error)
}
