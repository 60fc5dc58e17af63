package entity

import (
	"database/sql"

	"github.com/giftladder/backend/pkg/enum"
)

type ProductSource string

var (
	ProductSourceNaver  = enum.New(ProductSource("NAVER"))
	ProductSourceManual = enum.New(ProductSource("MANUAL"))
)

// Product caches an item returned by an external shopping search.
type Product struct {
	Base

	Source          ProductSource `gorm:"size:20;not null;uniqueIndex:uq_products_source"`
	SourceProductID string        `gorm:"size:64;not null;uniqueIndex:uq_products_source"`

	Title     string `gorm:"size:255;not null;index"`
	ImageURL  string
	LinkURL   string
	MallName  string `gorm:"size:120"`
	Brand     string `gorm:"size:120"`
	Maker     string `gorm:"size:120"`
	Category1 string `gorm:"size:120"`
	Category2 string `gorm:"size:120"`
	Category3 string `gorm:"size:120"`
	Category4 string `gorm:"size:120"`
	Price     int

	LastFetchedAt sql.NullTime
}
