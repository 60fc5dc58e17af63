package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/giftladder/backend/internal/domain/lottery"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const joinCodeLength = 12

type RoomDomain interface {
	CreateRoom(context.Context, *model.CreateRoomRequest) (*model.CreateRoomResponse, error)
	CreateProductRoom(context.Context, *model.CreateProductRoomRequest) (*model.CreateProductRoomResponse, error)
	GetRoom(context.Context, *model.GetRoomRequest) (*model.GetRoomResponse, error)
	GetRoomByJoinCode(context.Context, *model.GetRoomByJoinCodeRequest) (*model.GetRoomByJoinCodeResponse, error)
	GetMyRooms(context.Context, *model.GetMyRoomsRequest) (*model.GetMyRoomsResponse, error)
	GetFriendRooms(context.Context, *model.GetFriendRoomsRequest) (*model.GetFriendRoomsResponse, error)
	GetRoomsByFriend(context.Context, *model.GetRoomsByFriendRequest) (*model.GetRoomsByFriendResponse, error)
	GetRoomsByProduct(context.Context, *model.GetRoomsByProductRequest) (*model.GetRoomsByProductResponse, error)
	JoinRoom(context.Context, *model.JoinRoomRequest) (*model.JoinRoomResponse, error)
	SetReady(context.Context, *model.SetReadyRequest) (*model.SetReadyResponse, error)
	LeaveRoom(context.Context, *model.LeaveRoomRequest) (*model.LeaveRoomResponse, error)
	DeleteRoom(context.Context, *model.DeleteRoomRequest) (*model.DeleteRoomResponse, error)
}

type roomDomain struct {
	roomRepo        repository.RoomRepository
	participantRepo repository.RoomParticipantRepository
	gameRepo        repository.GameRepository
	friendRepo      repository.FriendRepository
	wishlistRepo    repository.WishlistRepository
	productRepo     repository.ProductRepository
	userRepo        repository.UserRepository
	picker          lottery.Picker
}

func NewRoomDomain(
	roomRepo repository.RoomRepository,
	participantRepo repository.RoomParticipantRepository,
	gameRepo repository.GameRepository,
	friendRepo repository.FriendRepository,
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	picker lottery.Picker,
) *roomDomain {
	return &roomDomain{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		gameRepo:        gameRepo,
		friendRepo:      friendRepo,
		wishlistRepo:    wishlistRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		picker:          picker,
	}
}

func (d *roomDomain) CreateRoom(
	ctx context.Context, req *model.CreateRoomRequest,
) (*model.CreateRoomResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if err := checkRoomInput(ctx, req.Title, req.MaxParticipants); err != nil {
		return nil, err
	}

	item, err := d.wishlistRepo.GetByID(ctx, req.WishlistItemID, requestUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found wishlist item")
		}

		xcontext.Logger(ctx).Errorf("Cannot get wishlist item: %v", err)
		return nil, errorx.Unknown
	}

	room, err := d.newRoom(ctx, entity.RoomWishlistGift, req.Title, req.MaxParticipants, item.ProductID)
	if err != nil {
		return nil, err
	}
	room.GiftOwnerUserID = sql.NullInt64{Int64: requestUserID, Valid: true}

	if err := d.roomRepo.Create(ctx, room); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create room: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateRoomResponse{Room: model.ConvertRoom(room, 0)}, nil
}

// CreateProductRoom creates a PRODUCT_LADDER room. The owner takes part in the
// lottery like any other participant, so it is enrolled right away.
func (d *roomDomain) CreateProductRoom(
	ctx context.Context, req *model.CreateProductRoomRequest,
) (*model.CreateProductRoomResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if err := checkRoomInput(ctx, req.Title, req.MaxParticipants); err != nil {
		return nil, err
	}

	product, err := d.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	room, err := d.newRoom(ctx, entity.RoomProductLadder, req.Title, req.MaxParticipants, product.ID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if err := d.roomRepo.Create(ctx, room); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create room: %v", err)
		return nil, errorx.Unknown
	}

	err = d.participantRepo.Create(ctx, &entity.RoomParticipant{
		RoomID:   room.ID,
		UserID:   requestUserID,
		Role:     entity.ParticipantOwner,
		State:    entity.ParticipantJoined,
		JoinedAt: time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot enroll room owner: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit room creation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProductRoomResponse{Room: model.ConvertRoom(room, 1)}, nil
}

func (d *roomDomain) GetRoom(ctx context.Context, req *model.GetRoomRequest) (*model.GetRoomResponse, error) {
	room, err := d.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	detail, err := d.getDetail(ctx, room)
	if err != nil {
		return nil, err
	}

	resp := model.GetRoomResponse(*detail)
	return &resp, nil
}

func (d *roomDomain) GetRoomByJoinCode(
	ctx context.Context, req *model.GetRoomByJoinCodeRequest,
) (*model.GetRoomByJoinCodeResponse, error) {
	if req.JoinCode == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty join code")
	}

	room, err := d.roomRepo.GetByJoinCode(ctx, req.JoinCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found room")
		}

		xcontext.Logger(ctx).Errorf("Cannot get room by join code: %v", err)
		return nil, errorx.Unknown
	}

	if room.Status == entity.RoomDeleted {
		return nil, errorx.New(errorx.NotFound, "Not found room")
	}

	detail, err := d.getDetail(ctx, room)
	if err != nil {
		return nil, err
	}

	resp := model.GetRoomByJoinCodeResponse(*detail)
	return &resp, nil
}

func (d *roomDomain) GetMyRooms(
	ctx context.Context, req *model.GetMyRoomsRequest,
) (*model.GetMyRoomsResponse, error) {
	rooms, err := d.roomRepo.GetListByOwner(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get my rooms: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.convertRooms(ctx, rooms)
	if err != nil {
		return nil, err
	}

	return &model.GetMyRoomsResponse{Rooms: result}, nil
}

// GetFriendRooms lists the open gift rooms of every user the caller has added
// as a friend.
func (d *roomDomain) GetFriendRooms(
	ctx context.Context, req *model.GetFriendRoomsRequest,
) (*model.GetFriendRoomsResponse, error) {
	friendIDs, err := d.friendRepo.GetFriendIDs(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friend ids: %v", err)
		return nil, errorx.Unknown
	}

	rooms, err := d.roomRepo.GetOpenGiftListByGiftOwners(ctx, friendIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friend rooms: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.convertRooms(ctx, rooms)
	if err != nil {
		return nil, err
	}

	return &model.GetFriendRoomsResponse{Rooms: result}, nil
}

func (d *roomDomain) GetRoomsByFriend(
	ctx context.Context, req *model.GetRoomsByFriendRequest,
) (*model.GetRoomsByFriendResponse, error) {
	isFriend, err := d.friendRepo.IsFriend(ctx, xcontext.RequestUserID(ctx), req.FriendUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check friend: %v", err)
		return nil, errorx.Unknown
	}

	if !isFriend {
		return nil, errorx.New(errorx.PermissionDenied, "Not a friend")
	}

	rooms, err := d.roomRepo.GetOpenGiftListByGiftOwners(ctx, []int64{req.FriendUserID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rooms of friend: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.convertRooms(ctx, rooms)
	if err != nil {
		return nil, err
	}

	return &model.GetRoomsByFriendResponse{Rooms: result}, nil
}

func (d *roomDomain) GetRoomsByProduct(
	ctx context.Context, req *model.GetRoomsByProductRequest,
) (*model.GetRoomsByProductResponse, error) {
	if _, err := d.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	rooms, err := d.roomRepo.GetOpenLadderListByProduct(ctx, req.ProductID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rooms of product: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.convertRooms(ctx, rooms)
	if err != nil {
		return nil, err
	}

	return &model.GetRoomsByProductResponse{Rooms: result}, nil
}

// DeleteRoom soft deletes the room. It is allowed in any status except
// RUNNING, including after the lottery is done.
func (d *roomDomain) DeleteRoom(
	ctx context.Context, req *model.DeleteRoomRequest,
) (*model.DeleteRoomResponse, error) {
	room, err := d.getRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	if room.OwnerUserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the owner can delete the room")
	}

	if room.Status == entity.RoomRunning {
		return nil, errorx.New(errorx.BadRequest, "Cannot delete a running room")
	}

	if err := d.roomRepo.SoftDelete(ctx, room.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found room")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete room: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteRoomResponse{}, nil
}

func (d *roomDomain) newRoom(
	ctx context.Context, roomType entity.RoomType, title string, maxParticipants int, productID int64,
) (*entity.Room, error) {
	joinCode, err := gonanoid.New(joinCodeLength)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate join code: %v", err)
		return nil, errorx.Unknown
	}

	return &entity.Room{
		RoomType:        roomType,
		Title:           strings.TrimSpace(title),
		Status:          entity.RoomOpen,
		MaxParticipants: maxParticipants,
		IsAutoStart:     true,
		JoinCode:        joinCode,
		OwnerUserID:     xcontext.RequestUserID(ctx),
		ProductID:       productID,
	}, nil
}

// getRoom returns the room or a NotFound error. Deleted rooms are hidden by
// the soft delete column.
func (d *roomDomain) getRoom(ctx context.Context, roomID int64) (*entity.Room, error) {
	room, err := d.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found room")
		}

		xcontext.Logger(ctx).Errorf("Cannot get room: %v", err)
		return nil, errorx.Unknown
	}

	if room.Status == entity.RoomDeleted {
		return nil, errorx.New(errorx.NotFound, "Not found room")
	}

	return room, nil
}

func (d *roomDomain) convertRooms(ctx context.Context, rooms []entity.Room) ([]model.Room, error) {
	roomIDs := []int64{}
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
	}

	counts, err := d.participantRepo.CountJoinedByRooms(ctx, roomIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Room{}
	for i := range rooms {
		result = append(result, model.ConvertRoom(&rooms[i], counts[rooms[i].ID]))
	}

	return result, nil
}

func checkRoomInput(ctx context.Context, title string, maxParticipants int) error {
	cfg := xcontext.Configs(ctx).Room
	if maxParticipants < cfg.MinParticipants || maxParticipants > cfg.MaxParticipants {
		return errorx.New(errorx.BadRequest,
			"Max participants must be between %d and %d", cfg.MinParticipants, cfg.MaxParticipants)
	}

	if utf8.RuneCountInString(strings.TrimSpace(title)) > cfg.MaxTitleLength {
		return errorx.New(errorx.BadRequest,
			"Title too long (at most %d characters)", cfg.MaxTitleLength)
	}

	return nil
}
