package domain

import (
	"context"
	"strings"
	"testing"

	"github.com/giftladder/backend/internal/domain/lottery"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/testutil"
	"github.com/giftladder/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestRoomDomain(picker lottery.Picker) *roomDomain {
	if picker == nil {
		picker = lottery.NewCryptoPicker()
	}

	return NewRoomDomain(
		repository.NewRoomRepository(),
		repository.NewRoomParticipantRepository(),
		repository.NewGameRepository(),
		repository.NewFriendRepository(),
		repository.NewWishlistRepository(),
		repository.NewProductRepository(),
		repository.NewUserRepository(),
		picker,
	)
}

func asUser(ctx context.Context, userID int64) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

func Test_roomDomain_CreateRoom(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	resp, err := domain.CreateRoom(asUser(ctx, testutil.User1.ID), &model.CreateRoomRequest{
		WishlistItemID:  testutil.WishlistItem1.ID,
		Title:           "  birthday gift  ",
		MaxParticipants: 3,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.RoomWishlistGift), resp.Room.RoomType)
	require.Equal(t, string(entity.RoomOpen), resp.Room.Status)
	require.Equal(t, "birthday gift", resp.Room.Title)
	require.Equal(t, testutil.Product1.ID, resp.Room.ProductID)
	require.Equal(t, testutil.User1.ID, resp.Room.OwnerUserID)
	require.NotNil(t, resp.Room.GiftOwnerUserID)
	require.Equal(t, testutil.User1.ID, *resp.Room.GiftOwnerUserID)
	require.True(t, resp.Room.IsAutoStart)
	require.Len(t, resp.Room.JoinCode, joinCodeLength)
	require.Equal(t, int64(0), resp.Room.CurrentParticipantCount)

	// The owner of a gift room is not enrolled.
	count, err := repository.NewRoomParticipantRepository().CountJoined(ctx, resp.Room.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func Test_roomDomain_CreateRoom_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	tests := []struct {
		name    string
		userID  int64
		req     *model.CreateRoomRequest
		wantErr error
	}{
		{
			name:    "too few participants",
			userID:  testutil.User1.ID,
			req:     &model.CreateRoomRequest{WishlistItemID: testutil.WishlistItem1.ID, MaxParticipants: 1},
			wantErr: errorx.New(errorx.BadRequest, "Max participants must be between 2 and 10"),
		},
		{
			name:    "too many participants",
			userID:  testutil.User1.ID,
			req:     &model.CreateRoomRequest{WishlistItemID: testutil.WishlistItem1.ID, MaxParticipants: 11},
			wantErr: errorx.New(errorx.BadRequest, "Max participants must be between 2 and 10"),
		},
		{
			name:   "title too long",
			userID: testutil.User1.ID,
			req: &model.CreateRoomRequest{
				WishlistItemID:  testutil.WishlistItem1.ID,
				Title:           strings.Repeat("가", 121),
				MaxParticipants: 2,
			},
			wantErr: errorx.New(errorx.BadRequest, "Title too long (at most 120 characters)"),
		},
		{
			name:    "unknown wishlist item",
			userID:  testutil.User1.ID,
			req:     &model.CreateRoomRequest{WishlistItemID: 999, MaxParticipants: 2},
			wantErr: errorx.New(errorx.NotFound, "Not found wishlist item"),
		},
		{
			name:    "wishlist item of another user",
			userID:  testutil.User2.ID,
			req:     &model.CreateRoomRequest{WishlistItemID: testutil.WishlistItem1.ID, MaxParticipants: 2},
			wantErr: errorx.New(errorx.NotFound, "Not found wishlist item"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.CreateRoom(asUser(ctx, tt.userID), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func Test_roomDomain_CreateProductRoom(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	resp, err := domain.CreateProductRoom(asUser(ctx, testutil.User5.ID), &model.CreateProductRoomRequest{
		ProductID:       testutil.Product2.ID,
		MaxParticipants: 2,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.RoomProductLadder), resp.Room.RoomType)
	require.Nil(t, resp.Room.GiftOwnerUserID)
	require.Equal(t, int64(1), resp.Room.CurrentParticipantCount)

	participant, err := repository.NewRoomParticipantRepository().Get(ctx, resp.Room.ID, testutil.User5.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ParticipantOwner, participant.Role)
	require.Equal(t, entity.ParticipantJoined, participant.State)
	require.False(t, participant.IsReady)

	_, err = domain.CreateProductRoom(asUser(ctx, testutil.User5.ID), &model.CreateProductRoomRequest{
		ProductID:       999,
		MaxParticipants: 2,
	})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found product"))
}

func Test_roomDomain_GetRoom_Permission(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	giftRoom, err := domain.CreateRoom(asUser(ctx, testutil.User1.ID), &model.CreateRoomRequest{
		WishlistItemID:  testutil.WishlistItem1.ID,
		MaxParticipants: 2,
	})
	require.NoError(t, err)

	ladderRoom, err := domain.CreateProductRoom(asUser(ctx, testutil.User1.ID), &model.CreateProductRoomRequest{
		ProductID:       testutil.Product1.ID,
		MaxParticipants: 2,
	})
	require.NoError(t, err)

	// The owner and the friends of the gift owner can see a gift room.
	for _, userID := range []int64{testutil.User1.ID, testutil.User2.ID, testutil.User3.ID} {
		detail, err := domain.GetRoom(asUser(ctx, userID), &model.GetRoomRequest{RoomID: giftRoom.Room.ID})
		require.NoError(t, err)
		require.Equal(t, "user1", detail.OwnerNickname)
		require.Equal(t, "user1", detail.GiftOwnerNickname)
		require.NotNil(t, detail.Product)
		require.Equal(t, testutil.Product1.Title, detail.Product.Title)
		require.Nil(t, detail.GameResult)
	}

	// A stranger cannot see a gift room.
	_, err = domain.GetRoom(asUser(ctx, testutil.User5.ID), &model.GetRoomRequest{RoomID: giftRoom.Room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, "Not authorized to view this room"))

	// But anyone can see a ladder room.
	detail, err := domain.GetRoom(asUser(ctx, testutil.User5.ID), &model.GetRoomRequest{RoomID: ladderRoom.Room.ID})
	require.NoError(t, err)
	require.Len(t, detail.Participants, 1)
	require.Equal(t, "user1", detail.Participants[0].Nickname)
	require.Equal(t, int64(1), detail.CurrentParticipantCount)
	require.Equal(t, int64(0), detail.CurrentReadyCount)

	_, err = domain.GetRoom(asUser(ctx, testutil.User1.ID), &model.GetRoomRequest{RoomID: 999})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found room"))
}

func Test_roomDomain_GetRoomByJoinCode(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	room, err := domain.CreateRoom(asUser(ctx, testutil.User1.ID), &model.CreateRoomRequest{
		WishlistItemID:  testutil.WishlistItem1.ID,
		MaxParticipants: 2,
	})
	require.NoError(t, err)

	detail, err := domain.GetRoomByJoinCode(asUser(ctx, testutil.User2.ID),
		&model.GetRoomByJoinCodeRequest{JoinCode: room.Room.JoinCode})
	require.NoError(t, err)
	require.Equal(t, room.Room.ID, detail.ID)

	_, err = domain.GetRoomByJoinCode(asUser(ctx, testutil.User5.ID),
		&model.GetRoomByJoinCodeRequest{JoinCode: room.Room.JoinCode})
	require.True(t, errorx.Is(err, errorx.PermissionDenied))

	_, err = domain.GetRoomByJoinCode(asUser(ctx, testutil.User2.ID),
		&model.GetRoomByJoinCodeRequest{JoinCode: "unknown"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_roomDomain_ListRooms(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	giftRoom, err := domain.CreateRoom(asUser(ctx, testutil.User1.ID), &model.CreateRoomRequest{
		WishlistItemID:  testutil.WishlistItem1.ID,
		MaxParticipants: 3,
	})
	require.NoError(t, err)

	ladderRoom, err := domain.CreateProductRoom(asUser(ctx, testutil.User1.ID), &model.CreateProductRoomRequest{
		ProductID:       testutil.Product2.ID,
		MaxParticipants: 3,
	})
	require.NoError(t, err)

	_, err = domain.JoinRoom(asUser(ctx, testutil.User2.ID), &model.JoinRoomRequest{RoomID: giftRoom.Room.ID})
	require.NoError(t, err)

	myRooms, err := domain.GetMyRooms(asUser(ctx, testutil.User1.ID), &model.GetMyRoomsRequest{})
	require.NoError(t, err)
	require.Len(t, myRooms.Rooms, 2)

	counts := map[int64]int64{}
	for _, r := range myRooms.Rooms {
		counts[r.ID] = r.CurrentParticipantCount
	}
	require.Equal(t, int64(1), counts[giftRoom.Room.ID])
	require.Equal(t, int64(1), counts[ladderRoom.Room.ID])

	// User2 has added User1, so the open gift room of User1 is listed.
	friendRooms, err := domain.GetFriendRooms(asUser(ctx, testutil.User2.ID), &model.GetFriendRoomsRequest{})
	require.NoError(t, err)
	require.Len(t, friendRooms.Rooms, 1)
	require.Equal(t, giftRoom.Room.ID, friendRooms.Rooms[0].ID)

	friendRooms, err = domain.GetFriendRooms(asUser(ctx, testutil.User5.ID), &model.GetFriendRoomsRequest{})
	require.NoError(t, err)
	require.Empty(t, friendRooms.Rooms)

	byFriend, err := domain.GetRoomsByFriend(asUser(ctx, testutil.User3.ID),
		&model.GetRoomsByFriendRequest{FriendUserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, byFriend.Rooms, 1)

	_, err = domain.GetRoomsByFriend(asUser(ctx, testutil.User5.ID),
		&model.GetRoomsByFriendRequest{FriendUserID: testutil.User1.ID})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, "Not a friend"))

	byProduct, err := domain.GetRoomsByProduct(asUser(ctx, testutil.User5.ID),
		&model.GetRoomsByProductRequest{ProductID: testutil.Product2.ID})
	require.NoError(t, err)
	require.Len(t, byProduct.Rooms, 1)
	require.Equal(t, ladderRoom.Room.ID, byProduct.Rooms[0].ID)

	_, err = domain.GetRoomsByProduct(asUser(ctx, testutil.User5.ID),
		&model.GetRoomsByProductRequest{ProductID: 999})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_roomDomain_DeleteRoom(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestRoomDomain(nil)

	room, err := domain.CreateRoom(asUser(ctx, testutil.User1.ID), &model.CreateRoomRequest{
		WishlistItemID:  testutil.WishlistItem1.ID,
		MaxParticipants: 2,
	})
	require.NoError(t, err)

	_, err = domain.DeleteRoom(asUser(ctx, testutil.User2.ID), &model.DeleteRoomRequest{RoomID: room.Room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, "Only the owner can delete the room"))

	_, err = domain.DeleteRoom(asUser(ctx, testutil.User1.ID), &model.DeleteRoomRequest{RoomID: room.Room.ID})
	require.NoError(t, err)

	// Deleted rooms behave as missing ones.
	_, err = domain.GetRoom(asUser(ctx, testutil.User1.ID), &model.GetRoomRequest{RoomID: room.Room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found room"))

	_, err = domain.JoinRoom(asUser(ctx, testutil.User2.ID), &model.JoinRoomRequest{RoomID: room.Room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found room"))

	_, err = domain.DeleteRoom(asUser(ctx, testutil.User1.ID), &model.DeleteRoomRequest{RoomID: room.Room.ID})
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, "Not found room"))

	myRooms, err := domain.GetMyRooms(asUser(ctx, testutil.User1.ID), &model.GetMyRoomsRequest{})
	require.NoError(t, err)
	require.Empty(t, myRooms.Rooms)
}
