package domain

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/giftladder/backend/internal/domain/lottery"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/testutil"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func createGiftRoom(t *testing.T, ctx context.Context, domain *roomDomain, maxParticipants int) *model.Room {
	resp, err := domain.CreateRoom(asUser(ctx, testutil.User1.ID), &model.CreateRoomRequest{
		WishlistItemID:  testutil.WishlistItem1.ID,
		Title:           "gift for user1",
		MaxParticipants: maxParticipants,
	})
	require.NoError(t, err)
	return &resp.Room
}

func createLadderRoom(t *testing.T, ctx context.Context, domain *roomDomain, maxParticipants int) *model.Room {
	resp, err := domain.CreateProductRoom(asUser(ctx, testutil.User1.ID), &model.CreateProductRoomRequest{
		ProductID:       testutil.Product1.ID,
		Title:           "who pays",
		MaxParticipants: maxParticipants,
	})
	require.NoError(t, err)
	return &resp.Room
}

func joinRoom(t *testing.T, ctx context.Context, domain *roomDomain, roomID int64, userIDs ...int64) {
	for _, userID := range userIDs {
		_, err := domain.JoinRoom(asUser(ctx, userID), &model.JoinRoomRequest{RoomID: roomID})
		require.NoError(t, err)
	}
}

func setReady(
	t *testing.T, ctx context.Context, domain *roomDomain, roomID, userID int64, isReady bool,
) *model.SetReadyResponse {
	resp, err := domain.SetReady(asUser(ctx, userID), &model.SetReadyRequest{RoomID: roomID, IsReady: isReady})
	require.NoError(t, err)
	return resp
}

func Test_roomDomain_JoinRoom(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	room := createGiftRoom(t, ctx, domain, 2)

	resp, err := domain.JoinRoom(asUser(ctx, testutil.User2.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.Participant.UserID)
	require.Equal(t, "user2", resp.Participant.Nickname)
	require.Equal(t, string(entity.ParticipantMember), resp.Participant.Role)
	require.Equal(t, string(entity.ParticipantJoined), resp.Participant.State)
	require.False(t, resp.Participant.IsReady)

	_, err = domain.JoinRoom(asUser(ctx, testutil.User2.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Already joined the room"))

	_, err = domain.JoinRoom(asUser(ctx, testutil.User1.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Gift owner cannot join the room"))

	_, err = domain.JoinRoom(asUser(ctx, testutil.User5.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, "Not a friend of the gift owner"))

	joinRoom(t, ctx, domain, room.ID, testutil.User3.ID)

	_, err = domain.JoinRoom(asUser(ctx, testutil.User4.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Room is full"))

	_, err = domain.JoinRoom(asUser(ctx, testutil.User4.ID), &model.JoinRoomRequest{RoomID: 999})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found room"))
}

func Test_roomDomain_JoinRoom_LadderAllowsStrangers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	room := createLadderRoom(t, ctx, domain, 2)

	_, err := domain.JoinRoom(asUser(ctx, testutil.User1.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Already joined the room"))

	joinRoom(t, ctx, domain, room.ID, testutil.User5.ID)

	_, err = domain.JoinRoom(asUser(ctx, testutil.User2.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Room is full"))
}

func Test_roomDomain_LeaveAndRejoin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)
	participantRepo := repository.NewRoomParticipantRepository()

	room := createGiftRoom(t, ctx, domain, 3)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID)
	setReady(t, ctx, domain, room.ID, testutil.User2.ID, true)

	before, err := participantRepo.Get(ctx, room.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.True(t, before.IsReady)

	leave, err := domain.LeaveRoom(asUser(ctx, testutil.User2.ID), &model.LeaveRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.ParticipantLeft), leave.Participant.State)
	require.False(t, leave.Participant.IsReady)
	require.NotEmpty(t, leave.Participant.LeftAt)

	_, err = domain.LeaveRoom(asUser(ctx, testutil.User2.ID), &model.LeaveRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Not a participant of the room"))

	count, err := participantRepo.CountJoined(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	rejoin, err := domain.JoinRoom(asUser(ctx, testutil.User2.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.Equal(t, before.ID, rejoin.Participant.ID)
	require.Equal(t, string(entity.ParticipantJoined), rejoin.Participant.State)
	require.False(t, rejoin.Participant.IsReady)
	require.Empty(t, rejoin.Participant.LeftAt)

	after, err := participantRepo.Get(ctx, room.ID, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, before.ID, after.ID)
	require.Equal(t, entity.ParticipantJoined, after.State)
	require.False(t, after.IsReady)
	require.False(t, after.LeftAt.Valid)

	_, err = domain.LeaveRoom(asUser(ctx, testutil.User3.ID), &model.LeaveRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Not a participant of the room"))
}

func Test_roomDomain_SetReady(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	room := createGiftRoom(t, ctx, domain, 3)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID)

	_, err := domain.SetReady(asUser(ctx, testutil.User3.ID), &model.SetReadyRequest{RoomID: room.ID, IsReady: true})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Not a participant of the room"))

	_, err = domain.SetReady(asUser(ctx, testutil.User3.ID), &model.SetReadyRequest{RoomID: 999, IsReady: true})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found room"))

	resp := setReady(t, ctx, domain, room.ID, testutil.User2.ID, true)
	require.True(t, resp.Participant.IsReady)
	require.False(t, resp.GameStarted)
	require.Nil(t, resp.GameResult)

	// Setting the same value again changes nothing.
	resp = setReady(t, ctx, domain, room.ID, testutil.User2.ID, true)
	require.True(t, resp.Participant.IsReady)
	require.False(t, resp.GameStarted)

	resp = setReady(t, ctx, domain, room.ID, testutil.User2.ID, false)
	require.False(t, resp.Participant.IsReady)
	require.False(t, resp.GameStarted)

	detail, err := domain.GetRoom(asUser(ctx, testutil.User1.ID), &model.GetRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), detail.CurrentReadyCount)
	require.Equal(t, string(entity.RoomOpen), detail.Status)
}

func Test_roomDomain_SetReady_SlotsFull(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)
	roomRepo := repository.NewRoomRepository()
	participantRepo := repository.NewRoomParticipantRepository()

	room := createGiftRoom(t, ctx, domain, 2)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID, testutil.User3.ID)

	// Shrink the room below its ready count to reach the capacity guard.
	setReady(t, ctx, domain, room.ID, testutil.User2.ID, true)
	err := xcontext.DB(ctx).Model(&entity.Room{}).Where("id = ?", room.ID).
		Update("max_participants", 1).Error
	require.NoError(t, err)

	_, err = domain.SetReady(asUser(ctx, testutil.User3.ID), &model.SetReadyRequest{RoomID: room.ID, IsReady: true})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Ready slots are full"))

	ready, err := participantRepo.CountReady(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), ready)

	stored, err := roomRepo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoomOpen, stored.Status)
}

func Test_roomDomain_SetReady_GiftRoomSettlement(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)
	gameRepo := repository.NewGameRepository()

	room := createGiftRoom(t, ctx, domain, 2)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID, testutil.User3.ID)

	resp := setReady(t, ctx, domain, room.ID, testutil.User2.ID, true)
	require.False(t, resp.GameStarted)

	resp = setReady(t, ctx, domain, room.ID, testutil.User3.ID, true)
	require.True(t, resp.GameStarted)
	require.NotNil(t, resp.GameResult)
	require.Equal(t, testutil.User1.ID, resp.GameResult.RecipientUserID)
	require.Equal(t, testutil.Product1.ID, resp.GameResult.ProductID)
	require.NotNil(t, resp.GameResult.PayerUserID)
	require.Contains(t, []int64{testutil.User2.ID, testutil.User3.ID}, *resp.GameResult.PayerUserID)
	require.NotEmpty(t, resp.GameResult.PayerNickname)
	require.Empty(t, resp.GameResult.ParticipantUserIDs)
	payerUserID := *resp.GameResult.PayerUserID

	game, err := gameRepo.GetByRoomID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, entity.GameDone, game.Status)
	require.Equal(t, testutil.User3.ID, game.StartedByUserID.Int64)
	require.Len(t, game.Seed, 64)

	result, err := gameRepo.GetResultByGameID(ctx, game.ID)
	require.NoError(t, err)
	require.Equal(t, entity.PaymentPending, result.PaymentStatus)
	require.Equal(t, payerUserID, result.PayerUserID.Int64)

	payers, err := gameRepo.GetPayersByResultID(ctx, result.ID)
	require.NoError(t, err)
	require.Empty(t, payers)

	// The gift owner sees who took part but not who pays.
	detail, err := domain.GetRoom(asUser(ctx, testutil.User1.ID), &model.GetRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.RoomDone), detail.Status)
	require.NotNil(t, detail.GameResult)
	require.Nil(t, detail.GameResult.PayerUserID)
	require.Empty(t, detail.GameResult.PayerNickname)
	require.ElementsMatch(t, []int64{testutil.User2.ID, testutil.User3.ID}, detail.GameResult.ParticipantUserIDs)

	// A participant sees the payer but not the participant list.
	detail, err = domain.GetRoom(asUser(ctx, testutil.User2.ID), &model.GetRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.NotNil(t, detail.GameResult.PayerUserID)
	require.Equal(t, payerUserID, *detail.GameResult.PayerUserID)
	require.Empty(t, detail.GameResult.ParticipantUserIDs)

	// The room is closed for any further change.
	_, err = domain.SetReady(asUser(ctx, testutil.User2.ID), &model.SetReadyRequest{RoomID: room.ID, IsReady: false})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Room is not open"))

	_, err = domain.JoinRoom(asUser(ctx, testutil.User4.ID), &model.JoinRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Room is not open"))

	_, err = domain.LeaveRoom(asUser(ctx, testutil.User2.ID), &model.LeaveRoomRequest{RoomID: room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Cannot leave the room after the lottery"))

	friendRooms, err := domain.GetFriendRooms(asUser(ctx, testutil.User2.ID), &model.GetFriendRoomsRequest{})
	require.NoError(t, err)
	require.Empty(t, friendRooms.Rooms)
}

func Test_roomDomain_SetReady_LadderRoomSettlement(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	// Always pick the last ready participant.
	domain := newTestRoomDomain(lottery.PickerFunc(func(n int) int { return n - 1 }))
	gameRepo := repository.NewGameRepository()
	participantRepo := repository.NewRoomParticipantRepository()

	room := createLadderRoom(t, ctx, domain, 3)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID, testutil.User5.ID)

	require.False(t, setReady(t, ctx, domain, room.ID, testutil.User1.ID, true).GameStarted)
	require.False(t, setReady(t, ctx, domain, room.ID, testutil.User2.ID, true).GameStarted)

	ready, err := participantRepo.GetReadyList(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, ready, 2)

	resp := setReady(t, ctx, domain, room.ID, testutil.User5.ID, true)
	require.True(t, resp.GameStarted)

	ready, err = participantRepo.GetReadyList(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, ready, 3)
	recipientUserID := ready[2].UserID

	result := resp.GameResult
	require.NotNil(t, result)
	require.Equal(t, recipientUserID, result.RecipientUserID)
	require.Nil(t, result.PayerUserID)
	require.ElementsMatch(t, []int64{testutil.User1.ID, testutil.User2.ID, testutil.User5.ID}, result.ParticipantUserIDs)
	require.Len(t, result.PayerUserIDs, 2)
	require.NotContains(t, result.PayerUserIDs, recipientUserID)
	require.Len(t, result.Payers, 2)

	game, err := gameRepo.GetByRoomID(ctx, room.ID)
	require.NoError(t, err)
	stored, err := gameRepo.GetResultByGameID(ctx, game.ID)
	require.NoError(t, err)
	require.False(t, stored.PayerUserID.Valid)

	payers, err := gameRepo.GetPayersByResultID(ctx, stored.ID)
	require.NoError(t, err)
	require.Len(t, payers, 2)
	for _, p := range payers {
		require.Equal(t, entity.PaymentPending, p.PaymentStatus)
	}

	// Everything is revealed to anyone looking at a ladder room.
	detail, err := domain.GetRoom(asUser(ctx, testutil.User4.ID), &model.GetRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.Equal(t, recipientUserID, detail.GameResult.RecipientUserID)
	require.ElementsMatch(t, result.PayerUserIDs, detail.GameResult.PayerUserIDs)
	require.Len(t, detail.GameResult.ParticipantUserIDs, 3)
}

func Test_roomDomain_SetReady_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)
	gameRepo := repository.NewGameRepository()

	room := createLadderRoom(t, ctx, domain, 4)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID, testutil.User3.ID, testutil.User4.ID)

	var started int32
	g, _ := errgroup.WithContext(ctx)
	for _, userID := range []int64{testutil.User1.ID, testutil.User2.ID, testutil.User3.ID, testutil.User4.ID} {
		userID := userID
		g.Go(func() error {
			resp, err := domain.SetReady(asUser(ctx, userID), &model.SetReadyRequest{RoomID: room.ID, IsReady: true})
			if err != nil {
				return err
			}

			if resp.GameStarted {
				atomic.AddInt32(&started, 1)
			}

			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, int32(1), atomic.LoadInt32(&started))

	count, err := gameRepo.CountByRoomID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	game, err := gameRepo.GetByRoomID(ctx, room.ID)
	require.NoError(t, err)
	result, err := gameRepo.GetResultByGameID(ctx, game.ID)
	require.NoError(t, err)
	payers, err := gameRepo.GetPayersByResultID(ctx, result.ID)
	require.NoError(t, err)
	require.Len(t, payers, 3)
}

func Test_roomDomain_DeleteRoom_AfterSettlement(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)
	roomRepo := repository.NewRoomRepository()

	done := createGiftRoom(t, ctx, domain, 2)
	joinRoom(t, ctx, domain, done.ID, testutil.User2.ID, testutil.User3.ID)
	setReady(t, ctx, domain, done.ID, testutil.User2.ID, true)
	require.True(t, setReady(t, ctx, domain, done.ID, testutil.User3.ID, true).GameStarted)

	_, err := domain.DeleteRoom(asUser(ctx, testutil.User1.ID), &model.DeleteRoomRequest{RoomID: done.ID})
	require.NoError(t, err)

	running := createLadderRoom(t, ctx, domain, 2)
	require.NoError(t, roomRepo.UpdateStatus(ctx, running.ID, entity.RoomOpen, entity.RoomRunning))

	_, err = domain.DeleteRoom(asUser(ctx, testutil.User1.ID), &model.DeleteRoomRequest{RoomID: running.ID})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Cannot delete a running room"))
}

type faultyGameRepo struct {
	repository.GameRepository
	createPayersErr error
	getResultErr    error
}

func (r *faultyGameRepo) CreatePayers(ctx context.Context, data []entity.GamePayer) error {
	if r.createPayersErr != nil {
		return r.createPayersErr
	}

	return r.GameRepository.CreatePayers(ctx, data)
}

func (r *faultyGameRepo) GetResultByGameID(ctx context.Context, gameID int64) (*entity.GameResult, error) {
	if r.getResultErr != nil {
		return nil, r.getResultErr
	}

	return r.GameRepository.GetResultByGameID(ctx, gameID)
}

func Test_roomDomain_SetReady_SettlementRollback(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)
	roomRepo := repository.NewRoomRepository()
	participantRepo := repository.NewRoomParticipantRepository()
	gameRepo := repository.NewGameRepository()

	room := createLadderRoom(t, ctx, domain, 2)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID)
	setReady(t, ctx, domain, room.ID, testutil.User1.ID, true)

	domain.gameRepo = &faultyGameRepo{
		GameRepository:  gameRepo,
		createPayersErr: errors.New("disk is full"),
	}

	_, err := domain.SetReady(asUser(ctx, testutil.User2.ID), &model.SetReadyRequest{RoomID: room.ID, IsReady: true})
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, "Failed to update ready state"))

	stored, err := roomRepo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoomOpen, stored.Status)

	count, err := gameRepo.CountByRoomID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	readyCount, err := participantRepo.CountReady(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), readyCount)

	// The room settles normally once storage recovers.
	domain.gameRepo = gameRepo
	resp := setReady(t, ctx, domain, room.ID, testutil.User2.ID, true)
	require.True(t, resp.GameStarted)
	require.NotNil(t, resp.GameResult)
}

func Test_roomDomain_SetReady_ResultReadFailsAfterCommit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)
	roomRepo := repository.NewRoomRepository()
	gameRepo := repository.NewGameRepository()

	room := createLadderRoom(t, ctx, domain, 2)
	joinRoom(t, ctx, domain, room.ID, testutil.User2.ID)
	setReady(t, ctx, domain, room.ID, testutil.User1.ID, true)

	domain.gameRepo = &faultyGameRepo{
		GameRepository: gameRepo,
		getResultErr:   errors.New("connection reset"),
	}

	resp := setReady(t, ctx, domain, room.ID, testutil.User2.ID, true)
	require.True(t, resp.GameStarted)
	require.Nil(t, resp.GameResult)

	stored, err := roomRepo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoomDone, stored.Status)

	count, err := gameRepo.CountByRoomID(ctx, room.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	domain.gameRepo = gameRepo
	detail, err := domain.GetRoom(asUser(ctx, testutil.User2.ID), &model.GetRoomRequest{RoomID: room.ID})
	require.NoError(t, err)
	require.NotNil(t, detail.GameResult)
}
