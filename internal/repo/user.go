package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/online_bookstore/internal/models"
)

// UpsertUser inserts the user or refreshes the existing row with the same
// open_id. Empty profile fields never overwrite stored values. The role column
// is only touched when updateRole is set.
func (r *GormRepo) UpsertUser(ctx context.Context, u *models.User, updateRole bool) (*models.User, error) {
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.LastSignedIn.IsZero() {
		u.LastSignedIn = time.Now().UTC()
	}

	cols := []string{"last_signed_in", "updated_at"}
	if u.Name != "" {
		cols = append(cols, "name")
	}
	if u.Email != "" {
		cols = append(cols, "email")
	}
	if u.LoginMethod != "" {
		cols = append(cols, "login_method")
	}
	if updateRole {
		cols = append(cols, "role")
	}

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(u).Error
	if err != nil {
		return nil, writeErr(err)
	}

	var stored models.User
	if err := r.DB.WithContext(ctx).Where("open_id = ?", u.OpenID).First(&stored).Error; err != nil {
		return nil, writeErr(err)
	}
	return &stored, nil
}

func (r *GormRepo) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("open_id = ?", openID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, degrade(ctx, "users.get_by_open_id", err)
	}
	return &u, nil
}

func (r *GormRepo) ListUsers(ctx context.Context, page Page) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{}).Order("created_at DESC").Order("id DESC")
	return list[models.User](ctx, "users.list", page.apply(q))
}

func (r *GormRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, degrade(ctx, "users.count", err)
	}
	return n, nil
}
