package entity

import (
	"database/sql"
	"time"

	"github.com/giftladder/backend/pkg/enum"
	"gorm.io/gorm"
)

type RoomType string

var (
	RoomWishlistGift  = enum.New(RoomType("WISHLIST_GIFT"))
	RoomProductLadder = enum.New(RoomType("PRODUCT_LADDER"))
)

type RoomStatus string

var (
	RoomOpen    = enum.New(RoomStatus("OPEN"))
	RoomRunning = enum.New(RoomStatus("RUNNING"))
	RoomDone    = enum.New(RoomStatus("DONE"))
	// RoomClosed is reserved, no transition produces it.
	RoomClosed  = enum.New(RoomStatus("CLOSED"))
	RoomDeleted = enum.New(RoomStatus("DELETED"))
)

type Room struct {
	Base

	RoomType        RoomType   `gorm:"size:30;not null;index"`
	Title           string     `gorm:"size:120"`
	Status          RoomStatus `gorm:"size:20;not null;index"`
	MaxParticipants int        `gorm:"not null"`
	IsAutoStart     bool       `gorm:"not null;default:true"`
	JoinCode        string     `gorm:"size:32;unique"`

	OwnerUserID int64 `gorm:"not null;index"`
	OwnerUser   User  `gorm:"foreignKey:OwnerUserID"`

	ProductID int64   `gorm:"not null;index"`
	Product   Product `gorm:"foreignKey:ProductID"`

	// GiftOwnerUserID is the gift recipient, set only for WISHLIST_GIFT rooms.
	GiftOwnerUserID sql.NullInt64 `gorm:"index"`
	GiftOwnerUser   User          `gorm:"foreignKey:GiftOwnerUserID"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

type ParticipantRole string

var (
	ParticipantOwner  = enum.New(ParticipantRole("OWNER"))
	ParticipantMember = enum.New(ParticipantRole("MEMBER"))
)

type ParticipantState string

var (
	ParticipantJoined = enum.New(ParticipantState("JOINED"))
	ParticipantLeft   = enum.New(ParticipantState("LEFT"))
)

type RoomParticipant struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	RoomID int64 `gorm:"not null;uniqueIndex:uq_room_participants"`
	Room   Room  `gorm:"foreignKey:RoomID"`

	UserID int64 `gorm:"not null;uniqueIndex:uq_room_participants;index"`
	User   User  `gorm:"foreignKey:UserID"`

	Role     ParticipantRole  `gorm:"size:20;not null"`
	State    ParticipantState `gorm:"size:20;not null"`
	IsReady  bool             `gorm:"not null;default:false;index"`
	JoinedAt time.Time        `gorm:"not null"`
	LeftAt   sql.NullTime
}
