package testutil

import (
	"context"
	"time"

	"github.com/giftladder/backend/config"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/logger"
	"github.com/giftladder/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.APIServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 2,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			AllowUserIDHeader: true,
		},
		Redis: config.RedisConfigs{
			CacheTTL: time.Minute,
		},
		Room: config.RoomConfigs{
			MinParticipants: 2,
			MaxParticipants: 10,
			MaxTitleLength:  120,
		},
	}
}

// MockContext returns a context holding a fresh in-memory database with all
// tables migrated. The database uses a single connection, so transactions
// opened by concurrent callers run one after another.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID int64) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
