package domain

import (
	"context"
	"errors"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// checkViewPermission allows anyone to see a PRODUCT_LADDER room. A
// WISHLIST_GIFT room is only visible to its owner and to the users who have
// added the gift owner as a friend.
func (d *roomDomain) checkViewPermission(ctx context.Context, room *entity.Room) error {
	if room.RoomType != entity.RoomWishlistGift {
		return nil
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if room.OwnerUserID == requestUserID {
		return nil
	}

	isFriend, err := d.friendRepo.IsFriend(ctx, requestUserID, room.GiftOwnerUserID.Int64)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check friend: %v", err)
		return errorx.Unknown
	}

	if !isFriend {
		xcontext.Logger(ctx).Debugf("User %d is not allowed to view room %d", requestUserID, room.ID)
		return errorx.New(errorx.PermissionDenied, "Not authorized to view this room")
	}

	return nil
}

func (d *roomDomain) getDetail(ctx context.Context, room *entity.Room) (*model.RoomDetail, error) {
	if err := d.checkViewPermission(ctx, room); err != nil {
		return nil, err
	}

	participants, err := d.participantRepo.GetListByRoom(ctx, room.ID, entity.ParticipantJoined)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	detail := &model.RoomDetail{
		Room:         model.ConvertRoom(room, int64(len(participants))),
		Participants: []model.Participant{},
	}

	for i := range participants {
		detail.Participants = append(detail.Participants, model.ConvertParticipant(&participants[i]))
		if participants[i].IsReady {
			detail.CurrentReadyCount++
		}
	}

	userIDs := []int64{room.OwnerUserID}
	if room.GiftOwnerUserID.Valid {
		userIDs = append(userIDs, room.GiftOwnerUserID.Int64)
	}

	nicknames, err := d.getNicknames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	detail.OwnerNickname = nicknames[room.OwnerUserID]
	if room.GiftOwnerUserID.Valid {
		detail.GiftOwnerNickname = nicknames[room.GiftOwnerUserID.Int64]
	}

	product, err := d.productRepo.GetByID(ctx, room.ProductID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get product of room: %v", err)
		return nil, errorx.Unknown
	}
	detail.Product = model.ConvertProductInfo(product)

	if room.Status == entity.RoomDone {
		detail.GameResult, err = d.getGameResult(ctx, room)
		if err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// getGameResult builds the lottery outcome of a settled room as seen by the
// caller, from the persisted game rows.
//
// WISHLIST_GIFT: the gift owner does not learn who pays but sees who took
// part, the other participants see the payer but not the participant list.
// PRODUCT_LADDER: everything is revealed to everyone.
func (d *roomDomain) getGameResult(ctx context.Context, room *entity.Room) (*model.GameResultInfo, error) {
	game, err := d.gameRepo.GetByRoomID(ctx, room.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get game of room: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.gameRepo.GetResultByGameID(ctx, game.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get game result: %v", err)
		return nil, errorx.Unknown
	}

	ready, err := d.participantRepo.GetReadyList(ctx, room.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ready participants: %v", err)
		return nil, errorx.Unknown
	}

	participantUserIDs := []int64{}
	for _, p := range ready {
		participantUserIDs = append(participantUserIDs, p.UserID)
	}

	userIDs := []int64{result.RecipientUserID}
	if result.PayerUserID.Valid {
		userIDs = append(userIDs, result.PayerUserID.Int64)
	}

	nicknames, err := d.getNicknames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	info := &model.GameResultInfo{
		GameID:             game.ID,
		RecipientUserID:    result.RecipientUserID,
		RecipientNickname:  nicknames[result.RecipientUserID],
		ProductID:          result.ProductID,
		ParticipantUserIDs: []int64{},
		PayerUserIDs:       []int64{},
		Payers:             []model.ShortUser{},
	}

	switch room.RoomType {
	case entity.RoomWishlistGift:
		if xcontext.RequestUserID(ctx) == room.GiftOwnerUserID.Int64 {
			info.ParticipantUserIDs = participantUserIDs
		} else if result.PayerUserID.Valid {
			payerUserID := result.PayerUserID.Int64
			info.PayerUserID = &payerUserID
			info.PayerNickname = nicknames[payerUserID]
		}

	case entity.RoomProductLadder:
		payers, err := d.gameRepo.GetPayersByResultID(ctx, result.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get game payers: %v", err)
			return nil, errorx.Unknown
		}

		info.ParticipantUserIDs = participantUserIDs
		for _, p := range payers {
			info.PayerUserIDs = append(info.PayerUserIDs, p.UserID)
			info.Payers = append(info.Payers, model.ShortUser{UserID: p.UserID, Nickname: p.User.Nickname})
		}
	}

	return info, nil
}

func (d *roomDomain) getNicknames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	nicknames := map[int64]string{}
	for _, u := range users {
		nicknames[u.ID] = u.Nickname
	}

	return nicknames, nil
}
