package bootstrap

import (
	"context"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/service"
)

// SeedAdmin creates the initial admin account in development environments.
// It is a no-op when an admin already exists.
func SeedAdmin(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).
		Model(&entity.User{}).
		Where("role = ?", entity.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-please"
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Nickname:     "admin",
		Email:        "admin@inkwell.local",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	zap.L().Info("seeded admin user", zap.String("email", admin.Email))
	return nil
}
