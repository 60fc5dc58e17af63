package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/giftladder/backend/internal/common"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// JoinRoom enrolls the caller. A caller who left the room before gets the same
// membership row back, with its role preserved and readiness cleared.
func (d *roomDomain) JoinRoom(ctx context.Context, req *model.JoinRoomRequest) (*model.JoinRoomResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	room, err := d.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	if room.Status != entity.RoomOpen {
		return nil, errorx.New(errorx.BadRequest, "Room is not open")
	}

	if room.RoomType == entity.RoomWishlistGift {
		if room.GiftOwnerUserID.Int64 == requestUserID {
			return nil, errorx.New(errorx.BadRequest, "Gift owner cannot join the room")
		}

		isFriend, err := d.friendRepo.IsFriend(ctx, requestUserID, room.GiftOwnerUserID.Int64)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check friend: %v", err)
			return nil, errorx.Unknown
		}

		if !isFriend {
			return nil, errorx.New(errorx.PermissionDenied, "Not a friend of the gift owner")
		}
	}

	participant, err := d.participantRepo.Get(ctx, room.ID, requestUserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	if participant != nil && participant.State == entity.ParticipantJoined {
		return nil, errorx.New(errorx.BadRequest, "Already joined the room")
	}

	joined, err := d.participantRepo.CountJoined(ctx, room.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count joined participants: %v", err)
		return nil, errorx.Unknown
	}

	if joined >= int64(room.MaxParticipants) {
		return nil, errorx.New(errorx.BadRequest, "Room is full")
	}

	now := time.Now()
	if participant != nil {
		err := d.participantRepo.Update(ctx, participant.ID, repository.RoomParticipantUpdate{
			State:    &entity.ParticipantJoined,
			IsReady:  new(bool),
			JoinedAt: &now,
			LeftAt:   &sql.NullTime{},
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot rejoin room: %v", err)
			return nil, errorx.Unknown
		}

		participant.State = entity.ParticipantJoined
		participant.IsReady = false
		participant.JoinedAt = now
		participant.LeftAt = sql.NullTime{}

		return &model.JoinRoomResponse{Participant: model.ConvertParticipant(participant)}, nil
	}

	user, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	participant = &entity.RoomParticipant{
		RoomID:   room.ID,
		UserID:   requestUserID,
		Role:     entity.ParticipantMember,
		State:    entity.ParticipantJoined,
		JoinedAt: now,
	}

	if err := d.participantRepo.Create(ctx, participant); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create participant: %v", err)
		return nil, errorx.Unknown
	}

	participant.User = *user
	return &model.JoinRoomResponse{Participant: model.ConvertParticipant(participant)}, nil
}

// LeaveRoom always clears readiness. It is rejected once the lottery has
// started or resolved.
func (d *roomDomain) LeaveRoom(ctx context.Context, req *model.LeaveRoomRequest) (*model.LeaveRoomResponse, error) {
	room, err := d.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	if room.Status == entity.RoomRunning || room.Status == entity.RoomDone {
		return nil, errorx.New(errorx.BadRequest, "Cannot leave the room after the lottery")
	}

	participant, err := d.getJoinedParticipant(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	leftAt := sql.NullTime{Time: now, Valid: true}
	err = d.participantRepo.Update(ctx, participant.ID, repository.RoomParticipantUpdate{
		State:   &entity.ParticipantLeft,
		IsReady: new(bool),
		LeftAt:  &leftAt,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot leave room: %v", err)
		return nil, errorx.Unknown
	}

	participant.State = entity.ParticipantLeft
	participant.IsReady = false
	participant.LeftAt = leftAt

	return &model.LeaveRoomResponse{Participant: model.ConvertParticipant(participant)}, nil
}

// SetReady updates the readiness of the caller. When the ready count reaches
// the room capacity, the same call settles the lottery.
//
// The room row stays locked from the first read until commit, so concurrent
// calls on one room are applied one by one and only one of them can observe
// the room full and settle it.
func (d *roomDomain) SetReady(ctx context.Context, req *model.SetReadyRequest) (*model.SetReadyResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	room, participant, settled, err := d.setReadyLocked(ctx, req)
	if err == nil {
		err = xcontext.CommitDBTransaction(ctx)
	}

	if err != nil {
		if errorx.IsKnown(err) && !errorx.Is(err, errorx.Internal) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot update ready state: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Failed to update ready state")
	}

	resp := &model.SetReadyResponse{
		Participant: model.ConvertParticipant(participant),
		GameStarted: settled,
	}

	if settled {
		common.PromCounters[common.LotterySettlementTotal].WithLabelValues(string(room.RoomType)).Inc()

		// The game is already committed, a failed read only hides the result
		// from this response.
		resp.GameResult, err = d.getGameResult(ctx, room)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get game result after settlement of room %d: %v", room.ID, err)
			resp.GameResult = nil
		}
	}

	return resp, nil
}

func (d *roomDomain) setReadyLocked(
	ctx context.Context, req *model.SetReadyRequest,
) (*entity.Room, *entity.RoomParticipant, bool, error) {
	room, err := d.roomRepo.GetByIDForUpdate(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, false, errorx.New(errorx.NotFound, "Not found room")
		}

		return nil, nil, false, err
	}

	if room.Status != entity.RoomOpen {
		return nil, nil, false, errorx.New(errorx.BadRequest, "Room is not open")
	}

	participant, err := d.getJoinedParticipant(ctx, room.ID)
	if err != nil {
		return nil, nil, false, err
	}

	if req.IsReady && !participant.IsReady {
		readyCount, err := d.participantRepo.CountReady(ctx, room.ID)
		if err != nil {
			return nil, nil, false, err
		}

		if readyCount >= int64(room.MaxParticipants) {
			return nil, nil, false, errorx.New(errorx.BadRequest, "Ready slots are full")
		}
	}

	if participant.IsReady != req.IsReady {
		err := d.participantRepo.Update(ctx, participant.ID, repository.RoomParticipantUpdate{
			IsReady: &req.IsReady,
		})
		if err != nil {
			return nil, nil, false, err
		}

		participant.IsReady = req.IsReady
	}

	if !req.IsReady {
		return room, participant, false, nil
	}

	readyCount, err := d.participantRepo.CountReady(ctx, room.ID)
	if err != nil {
		return nil, nil, false, err
	}

	if readyCount != int64(room.MaxParticipants) {
		return room, participant, false, nil
	}

	if err := d.settle(ctx, room, participant.UserID); err != nil {
		return nil, nil, false, err
	}

	room.Status = entity.RoomDone
	return room, participant, true, nil
}

// getJoinedParticipant returns the JOINED membership of the caller, or a
// BadRequest error if the caller is not in the room.
func (d *roomDomain) getJoinedParticipant(ctx context.Context, roomID int64) (*entity.RoomParticipant, error) {
	participant, err := d.participantRepo.Get(ctx, roomID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Not a participant of the room")
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	if participant.State != entity.ParticipantJoined {
		return nil, errorx.New(errorx.BadRequest, "Not a participant of the room")
	}

	return participant, nil
}
