package main

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/giftladder/backend/config"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// loadConfig starts from the defaults, applies the TOML file given by
// --config, then lets environment variables override single values.
func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg := config.Default()

	if path := cctx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return err
		}
	}

	if err := godotenv.Load(cctx.String("env-file")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.Database.Kind = getEnv("DB_KIND", cfg.Database.Kind)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.Database = getEnv("DB_DATABASE", cfg.Database.Database)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.LogLevel = getEnv("DB_LOG_LEVEL", cfg.Database.LogLevel)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", cfg.Database.ConnMaxLifetime)

	cfg.ApiServer.Host = getEnv("API_HOST", cfg.ApiServer.Host)
	cfg.ApiServer.Port = getEnv("API_PORT", cfg.ApiServer.Port)
	cfg.ApiServer.AllowedOrigins = getEnvList("API_ALLOWED_ORIGINS", cfg.ApiServer.AllowedOrigins)
	cfg.ApiServer.MaxLimit = getEnvInt("API_MAX_LIMIT", cfg.ApiServer.MaxLimit)
	cfg.ApiServer.DefaultLimit = getEnvInt("API_DEFAULT_LIMIT", cfg.ApiServer.DefaultLimit)

	cfg.Auth.TokenSecret = getEnv("TOKEN_SECRET", cfg.Auth.TokenSecret)
	cfg.Auth.AccessToken.Expiration = getEnvDuration("ACCESS_TOKEN_EXPIRATION", cfg.Auth.AccessToken.Expiration)
	cfg.Auth.AllowUserIDHeader = getEnvBool("ALLOW_USER_ID_HEADER", cfg.Auth.AllowUserIDHeader)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.CacheTTL = getEnvDuration("SEARCH_CACHE_TTL", cfg.Redis.CacheTTL)

	cfg.Naver.Endpoint = getEnv("NAVER_ENDPOINT", cfg.Naver.Endpoint)
	cfg.Naver.ClientID = getEnv("NAVER_CLIENT_ID", cfg.Naver.ClientID)
	cfg.Naver.ClientSecret = getEnv("NAVER_CLIENT_SECRET", cfg.Naver.ClientSecret)
	cfg.Naver.Timeout = getEnvDuration("NAVER_TIMEOUT", cfg.Naver.Timeout)

	cfg.Room.MinParticipants = getEnvInt("ROOM_MIN_PARTICIPANTS", cfg.Room.MinParticipants)
	cfg.Room.MaxParticipants = getEnvInt("ROOM_MAX_PARTICIPANTS", cfg.Room.MaxParticipants)
	cfg.Room.MaxTitleLength = getEnvInt("ROOM_MAX_TITLE_LENGTH", cfg.Room.MaxTitleLength)

	if cfg.Room.MinParticipants < 1 || cfg.Room.MinParticipants > cfg.Room.MaxParticipants {
		return errors.New("invalid room participant bounds")
	}

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvBool(key string, fallback bool) bool {
	val, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	result := []string{}
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}
