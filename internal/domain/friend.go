package domain

import (
	"context"
	"errors"

	"github.com/giftladder/backend/internal/common"
	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FriendDomain interface {
	AddFriend(context.Context, *model.AddFriendRequest) (*model.AddFriendResponse, error)
	RemoveFriend(context.Context, *model.RemoveFriendRequest) (*model.RemoveFriendResponse, error)
	GetFriends(context.Context, *model.GetFriendsRequest) (*model.GetFriendsResponse, error)
}

type friendDomain struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

func NewFriendDomain(
	friendRepo repository.FriendRepository,
	userRepo repository.UserRepository,
) *friendDomain {
	return &friendDomain{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// AddFriend creates an edge from the caller to the target, who is looked up by
// id or, if no id is given, by nickname.
func (d *friendDomain) AddFriend(
	ctx context.Context, req *model.AddFriendRequest,
) (*model.AddFriendResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	var target *entity.User
	var err error
	switch {
	case req.FriendUserID != 0:
		target, err = d.userRepo.GetByID(ctx, req.FriendUserID)
	case req.Nickname != "":
		target, err = d.userRepo.GetByNickname(ctx, req.Nickname)
	default:
		return nil, errorx.New(errorx.BadRequest, "Require friend user id or nickname")
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get friend user: %v", err)
		return nil, errorx.Unknown
	}

	if target.ID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Cannot add yourself as a friend")
	}

	if _, err := d.friendRepo.Get(ctx, requestUserID, target.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Already friends")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get friend: %v", err)
		return nil, errorx.Unknown
	}

	friend := &entity.Friend{
		OwnerUserID:  requestUserID,
		FriendUserID: target.ID,
	}

	if err := d.friendRepo.Create(ctx, friend); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Already friends")
		}

		xcontext.Logger(ctx).Errorf("Cannot create friend: %v", err)
		return nil, errorx.Unknown
	}

	friend.FriendUser = *target
	return &model.AddFriendResponse{Friend: model.ConvertFriend(friend)}, nil
}

func (d *friendDomain) RemoveFriend(
	ctx context.Context, req *model.RemoveFriendRequest,
) (*model.RemoveFriendResponse, error) {
	err := d.friendRepo.Delete(ctx, xcontext.RequestUserID(ctx), req.FriendUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found friend")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete friend: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveFriendResponse{}, nil
}

func (d *friendDomain) GetFriends(
	ctx context.Context, req *model.GetFriendsRequest,
) (*model.GetFriendsResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	apiCfg := xcontext.Configs(ctx).ApiServer
	offset, limit, page := common.Pagination(req.Page, req.Size, apiCfg.DefaultLimit, apiCfg.MaxLimit)

	total, err := d.friendRepo.CountByOwnerID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count friends: %v", err)
		return nil, errorx.Unknown
	}

	friends, err := d.friendRepo.GetListByOwnerID(ctx, requestUserID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friend list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Friend{}
	for i := range friends {
		result = append(result, model.ConvertFriend(&friends[i]))
	}

	return &model.GetFriendsResponse{
		Friends:    result,
		Pagination: model.Pagination{Page: page, Size: limit, Total: total},
	}, nil
}
