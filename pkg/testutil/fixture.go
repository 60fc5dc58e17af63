package testutil

import (
	"context"
	"database/sql"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/crypto"
	"github.com/giftladder/backend/pkg/xcontext"
)

const FixturePassword = "password123"

var (
	// Users
	User1 = &entity.User{Base: entity.Base{ID: 1}, Email: "user1@example.com", Nickname: "user1"}
	User2 = &entity.User{Base: entity.Base{ID: 2}, Email: "user2@example.com", Nickname: "user2"}
	User3 = &entity.User{Base: entity.Base{ID: 3}, Email: "user3@example.com", Nickname: "user3"}
	User4 = &entity.User{Base: entity.Base{ID: 4}, Email: "user4@example.com", Nickname: "user4"}
	User5 = &entity.User{Base: entity.Base{ID: 5}, Email: "user5@example.com", Nickname: "user5"}

	Users = []*entity.User{User1, User2, User3, User4, User5}

	// Friend edges. User2, User3 and User4 have added User1, so they can see
	// and join the gift rooms of User1. User5 has no friend.
	Friends = []*entity.Friend{
		{Base: entity.Base{ID: 1}, OwnerUserID: User1.ID, FriendUserID: User2.ID},
		{Base: entity.Base{ID: 2}, OwnerUserID: User2.ID, FriendUserID: User1.ID},
		{Base: entity.Base{ID: 3}, OwnerUserID: User3.ID, FriendUserID: User1.ID},
		{Base: entity.Base{ID: 4}, OwnerUserID: User4.ID, FriendUserID: User1.ID},
	}

	// Products
	Product1 = &entity.Product{
		Base:            entity.Base{ID: 1},
		Source:          entity.ProductSourceNaver,
		SourceProductID: "naver-1001",
		Title:           "Lego Star Wars",
		ImageURL:        "https://img.example.com/1001.jpg",
		LinkURL:         "https://shop.example.com/1001",
		MallName:        "toy mall",
		Price:           15000,
	}

	Product2 = &entity.Product{
		Base:            entity.Base{ID: 2},
		Source:          entity.ProductSourceManual,
		SourceProductID: "manual-1",
		Title:           "Coffee voucher",
		Price:           5000,
	}

	Products = []*entity.Product{Product1, Product2}

	// Wishlist items
	WishlistItem1 = &entity.WishlistItem{
		Base:      entity.Base{ID: 1},
		UserID:    User1.ID,
		ProductID: Product1.ID,
		Memo:      "birthday",
		Priority:  sql.NullInt32{Int32: 1, Valid: true},
	}

	WishlistItems = []*entity.WishlistItem{WishlistItem1}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertFriends(ctx)
	InsertProducts(ctx)
	InsertWishlistItems(ctx)
}

func InsertUsers(ctx context.Context) {
	hashed, err := crypto.HashPassword(FixturePassword)
	if err != nil {
		panic(err)
	}

	for _, user := range Users {
		user.PasswordHash = hashed
		if err := xcontext.DB(ctx).Create(user).Error; err != nil {
			panic(err)
		}
	}
}

func InsertFriends(ctx context.Context) {
	for _, friend := range Friends {
		if err := xcontext.DB(ctx).Create(friend).Error; err != nil {
			panic(err)
		}
	}
}

func InsertProducts(ctx context.Context) {
	for _, product := range Products {
		if err := xcontext.DB(ctx).Create(product).Error; err != nil {
			panic(err)
		}
	}
}

func InsertWishlistItems(ctx context.Context) {
	for _, item := range WishlistItems {
		if err := xcontext.DB(ctx).Create(item).Error; err != nil {
			panic(err)
		}
	}
}
