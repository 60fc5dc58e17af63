package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer APIServerConfigs `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Redis     RedisConfigs     `toml:"redis"`
	Naver     NaverConfigs     `toml:"naver"`
	Room      RoomConfigs      `toml:"room"`
}

type DatabaseConfigs struct {
	Kind     string `toml:"kind"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log_level"`

	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

// ConnectionString returns the DSN for the configured database kind. For
// sqlite the Database field is the file path.
func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Kind {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type APIServerConfigs struct {
	ServerConfigs
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
}

type ServerConfigs struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret       string       `toml:"token_secret"`
	AccessToken       TokenConfigs `toml:"access_token"`
	AllowUserIDHeader bool         `toml:"allow_user_id_header"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type RedisConfigs struct {
	Addr     string        `toml:"addr"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

type NaverConfigs struct {
	Endpoint     string        `toml:"endpoint"`
	ClientID     string        `toml:"client_id"`
	ClientSecret string        `toml:"client_secret"`
	Timeout      time.Duration `toml:"timeout"`
}

type RoomConfigs struct {
	MinParticipants int `toml:"min_participants"`
	MaxParticipants int `toml:"max_participants"`
	MaxTitleLength  int `toml:"max_title_length"`
}

// Default returns the configuration used when neither file nor environment
// sets a value.
func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Kind:            "mysql",
			Host:            "localhost",
			Port:            "3306",
			Database:        "giftladder",
			User:            "root",
			LogLevel:        "silence",
			MaxOpenConns:    100,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
		},
		ApiServer: APIServerConfigs{
			ServerConfigs: ServerConfigs{Port: "8080", AllowedOrigins: []string{"*"}},
			MaxLimit:      100,
			DefaultLimit:  20,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{Name: "access_token", Expiration: time.Hour},
		},
		Redis: RedisConfigs{CacheTTL: 10 * time.Minute},
		Naver: NaverConfigs{
			Endpoint: "https://openapi.naver.com",
			Timeout:  10 * time.Second,
		},
		Room: RoomConfigs{
			MinParticipants: 2,
			MaxParticipants: 10,
			MaxTitleLength:  120,
		},
	}
}
