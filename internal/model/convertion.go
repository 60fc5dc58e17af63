package model

import (
	"database/sql"
	"time"

	"github.com/giftladder/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(DefaultTimeLayout)
}

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	result := User{
		ID:        user.ID,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt: user.UpdatedAt.Format(DefaultTimeLayout),
	}

	if includeSensitive {
		result.Email = user.Email
	}

	return result
}

func ConvertFriend(friend *entity.Friend) Friend {
	if friend == nil {
		return Friend{}
	}

	return Friend{
		ID:           friend.ID,
		FriendUserID: friend.FriendUserID,
		Nickname:     friend.FriendUser.Nickname,
		CreatedAt:    friend.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertProduct(product *entity.Product) Product {
	if product == nil {
		return Product{}
	}

	return Product{
		ID:              product.ID,
		Source:          string(product.Source),
		SourceProductID: product.SourceProductID,
		Title:           product.Title,
		ImageURL:        product.ImageURL,
		LinkURL:         product.LinkURL,
		MallName:        product.MallName,
		Brand:           product.Brand,
		Maker:           product.Maker,
		Category1:       product.Category1,
		Category2:       product.Category2,
		Category3:       product.Category3,
		Category4:       product.Category4,
		Price:           product.Price,
		LastFetchedAt:   formatNullTime(product.LastFetchedAt),
	}
}

func ConvertProductInfo(product *entity.Product) *ProductInfo {
	if product == nil || product.ID == 0 {
		return nil
	}

	return &ProductInfo{
		ID:       product.ID,
		Title:    product.Title,
		ImageURL: product.ImageURL,
		Price:    product.Price,
		LinkURL:  product.LinkURL,
	}
}

func ConvertWishlistItem(item *entity.WishlistItem) WishlistItem {
	if item == nil {
		return WishlistItem{}
	}

	var priority *int
	if item.Priority.Valid {
		p := int(item.Priority.Int32)
		priority = &p
	}

	return WishlistItem{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Product:   ConvertProduct(&item.Product),
		Memo:      item.Memo,
		Priority:  priority,
		CreatedAt: item.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertRoom(room *entity.Room, participantCount int64) Room {
	if room == nil {
		return Room{}
	}

	var giftOwnerUserID *int64
	if room.GiftOwnerUserID.Valid {
		id := room.GiftOwnerUserID.Int64
		giftOwnerUserID = &id
	}

	return Room{
		ID:                      room.ID,
		RoomType:                string(room.RoomType),
		Title:                   room.Title,
		Status:                  string(room.Status),
		MaxParticipants:         room.MaxParticipants,
		IsAutoStart:             room.IsAutoStart,
		JoinCode:                room.JoinCode,
		OwnerUserID:             room.OwnerUserID,
		ProductID:               room.ProductID,
		GiftOwnerUserID:         giftOwnerUserID,
		CreatedAt:               room.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:               room.UpdatedAt.Format(DefaultTimeLayout),
		CurrentParticipantCount: participantCount,
	}
}

func ConvertParticipant(participant *entity.RoomParticipant) Participant {
	if participant == nil {
		return Participant{}
	}

	return Participant{
		ID:       participant.ID,
		RoomID:   participant.RoomID,
		UserID:   participant.UserID,
		Nickname: participant.User.Nickname,
		Role:     string(participant.Role),
		State:    string(participant.State),
		IsReady:  participant.IsReady,
		JoinedAt: participant.JoinedAt.Format(DefaultTimeLayout),
		LeftAt:   formatNullTime(participant.LeftAt),
	}
}
