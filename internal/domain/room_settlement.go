package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/giftladder/backend/internal/domain/lottery"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/crypto"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// settle runs the lottery of a full room and records its outcome. It must be
// called inside the transaction holding the room lock. Any error leaves the
// transaction to be rolled back by the caller.
func (d *roomDomain) settle(ctx context.Context, room *entity.Room, startedByUserID int64) error {
	if err := d.roomRepo.UpdateStatus(ctx, room.ID, entity.RoomOpen, entity.RoomDone); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.BadRequest, "Room is not open")
		}

		return err
	}

	ready, err := d.participantRepo.GetReadyList(ctx, room.ID)
	if err != nil {
		return err
	}

	readyUserIDs := []int64{}
	for _, p := range ready {
		readyUserIDs = append(readyUserIDs, p.UserID)
	}

	outcome, err := lottery.Draw(room.RoomType, room.GiftOwnerUserID.Int64, readyUserIDs, d.picker)
	if err != nil {
		return err
	}

	seed, err := crypto.RandomHex(32)
	if err != nil {
		return err
	}

	now := time.Now()
	game := &entity.Game{
		RoomID:          room.ID,
		Status:          entity.GameDone,
		StartedByUserID: sql.NullInt64{Int64: startedByUserID, Valid: true},
		StartedAt:       sql.NullTime{Time: now, Valid: true},
		EndedAt:         sql.NullTime{Time: now, Valid: true},
		Seed:            seed,
	}

	if err := d.gameRepo.Create(ctx, game); err != nil {
		return err
	}

	result := &entity.GameResult{
		GameID:          game.ID,
		ProductID:       room.ProductID,
		RecipientUserID: outcome.RecipientUserID,
		PaymentStatus:   entity.PaymentPending,
	}

	if outcome.PayerUserID != 0 {
		result.PayerUserID = sql.NullInt64{Int64: outcome.PayerUserID, Valid: true}
	}

	if err := d.gameRepo.CreateResult(ctx, result); err != nil {
		return err
	}

	payers := []entity.GamePayer{}
	for _, userID := range outcome.PayerUserIDs {
		payers = append(payers, entity.GamePayer{
			GameResultID:  result.ID,
			UserID:        userID,
			PaymentStatus: entity.PaymentPending,
		})
	}

	if err := d.gameRepo.CreatePayers(ctx, payers); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Room %d (%s) is settled: recipient=%d payer=%d payers=%v",
		room.ID, room.RoomType, outcome.RecipientUserID, outcome.PayerUserID, outcome.PayerUserIDs)

	return nil
}
