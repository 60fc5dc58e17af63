package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giftladder/backend/config"
	"github.com/giftladder/backend/internal/domain"
	"github.com/giftladder/backend/internal/domain/lottery"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/api/naver"
	"github.com/giftladder/backend/pkg/authenticator"
	"github.com/giftladder/backend/pkg/logger"
	"github.com/giftladder/backend/pkg/router"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/giftladder/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient       xredis.Client
	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
	shoppingSearcher  naver.IEndpoint

	userRepo        repository.UserRepository
	friendRepo      repository.FriendRepository
	productRepo     repository.ProductRepository
	wishlistRepo    repository.WishlistRepository
	roomRepo        repository.RoomRepository
	participantRepo repository.RoomParticipantRepository
	gameRepo        repository.GameRepository

	userDomain     domain.UserDomain
	friendDomain   domain.FriendDomain
	productDomain  domain.ProductDomain
	wishlistDomain domain.WishlistDomain
	roomDomain     domain.RoomDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(s.configs.LogLevel))
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() error {
	cfg := s.configs.Database

	var dialector gorm.Dialector
	switch cfg.Kind {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return fmt.Errorf("unsupported database kind %q", cfg.Kind)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, s.db)
	return nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "info", "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

// loadRedis connects the search cache. Without an address the cache is off.
func (s *srv) loadRedis() {
	if s.configs.Redis.Addr == "" {
		s.logger.Infof("Redis address is not set, product search is not cached")
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()

	redisClient, err := xredis.NewClient(ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, product search is not cached: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadEndpoint() {
	s.accessTokenEngine = authenticator.NewTokenEngine[model.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.AccessToken.Expiration)
	s.shoppingSearcher = naver.New(s.configs.Naver)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.friendRepo = repository.NewFriendRepository()
	s.productRepo = repository.NewProductRepository()
	s.wishlistRepo = repository.NewWishlistRepository()
	s.roomRepo = repository.NewRoomRepository()
	s.participantRepo = repository.NewRoomParticipantRepository()
	s.gameRepo = repository.NewGameRepository()
}

func (s *srv) loadDomains() {
	s.userDomain = domain.NewUserDomain(s.userRepo, s.accessTokenEngine)
	s.friendDomain = domain.NewFriendDomain(s.friendRepo, s.userRepo)
	s.productDomain = domain.NewProductDomain(s.productRepo, s.shoppingSearcher, s.redisClient)
	s.wishlistDomain = domain.NewWishlistDomain(s.wishlistRepo, s.productRepo, s.friendRepo)
	s.roomDomain = domain.NewRoomDomain(
		s.roomRepo,
		s.participantRepo,
		s.gameRepo,
		s.friendRepo,
		s.wishlistRepo,
		s.productRepo,
		s.userRepo,
		lottery.NewCryptoPicker(),
	)
}
