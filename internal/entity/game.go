package entity

import (
	"database/sql"

	"github.com/giftladder/backend/pkg/enum"
)

type GameStatus string

var (
	GameReady    = enum.New(GameStatus("READY"))
	GameRunning  = enum.New(GameStatus("RUNNING"))
	GameDone     = enum.New(GameStatus("DONE"))
	GameCanceled = enum.New(GameStatus("CANCELED"))
)

type Game struct {
	Base

	RoomID int64 `gorm:"not null;uniqueIndex"`
	Room   Room  `gorm:"foreignKey:RoomID"`

	Status          GameStatus    `gorm:"size:20;not null;index"`
	StartedByUserID sql.NullInt64 `gorm:"index"`
	StartedAt       sql.NullTime
	EndedAt         sql.NullTime

	// Seed is kept for auditing. The draw does not consume it.
	Seed string `gorm:"size:64"`
}

type PaymentStatus string

var (
	PaymentPending  = enum.New(PaymentStatus("PENDING"))
	PaymentPaid     = enum.New(PaymentStatus("PAID"))
	PaymentFailed   = enum.New(PaymentStatus("FAILED"))
	PaymentCanceled = enum.New(PaymentStatus("CANCELED"))
)

type GameResult struct {
	Base

	GameID int64 `gorm:"not null;uniqueIndex"`
	Game   Game  `gorm:"foreignKey:GameID"`

	ProductID       int64 `gorm:"not null;index"`
	RecipientUserID int64 `gorm:"not null;index"`
	// PayerUserID names the single payer of a WISHLIST_GIFT room.
	PayerUserID   sql.NullInt64 `gorm:"index"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null"`
	PaidAt        sql.NullTime
	MessageSentAt sql.NullTime
}

// GamePayer is one losing participant of a PRODUCT_LADDER room.
type GamePayer struct {
	Base

	GameResultID int64      `gorm:"not null;uniqueIndex:uq_game_payers"`
	GameResult   GameResult `gorm:"foreignKey:GameResultID"`

	UserID int64 `gorm:"not null;uniqueIndex:uq_game_payers;index"`
	User   User  `gorm:"foreignKey:UserID"`

	PaymentStatus PaymentStatus `gorm:"size:20;not null"`
	PaidAt        sql.NullTime
}
