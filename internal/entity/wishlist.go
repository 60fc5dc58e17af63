package entity

import "database/sql"

type WishlistItem struct {
	Base

	UserID int64 `gorm:"not null;uniqueIndex:uq_wishlist_user_product"`
	User   User  `gorm:"foreignKey:UserID"`

	ProductID int64   `gorm:"not null;uniqueIndex:uq_wishlist_user_product;index"`
	Product   Product `gorm:"foreignKey:ProductID"`

	Memo     string `gorm:"size:255"`
	Priority sql.NullInt32
}
