package entity

import (
	"context"
	"time"

	"github.com/giftladder/backend/pkg/xcontext"
)

type Base struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Friend{},
		&Product{},
		&WishlistItem{},
		&Room{},
		&RoomParticipant{},
		&Game{},
		&GameResult{},
		&GamePayer{},
	)
}
