package domain

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"unicode/utf8"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/internal/model"
	"github.com/giftladder/backend/internal/repository"
	"github.com/giftladder/backend/pkg/errorx"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxMemoLength = 255

type WishlistDomain interface {
	AddToWishlist(context.Context, *model.AddToWishlistRequest) (*model.AddToWishlistResponse, error)
	RemoveFromWishlist(context.Context, *model.RemoveFromWishlistRequest) (*model.RemoveFromWishlistResponse, error)
	GetMyWishlist(context.Context, *model.GetMyWishlistRequest) (*model.GetMyWishlistResponse, error)
	GetFriendWishlist(context.Context, *model.GetFriendWishlistRequest) (*model.GetFriendWishlistResponse, error)
}

type wishlistDomain struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	friendRepo   repository.FriendRepository
}

func NewWishlistDomain(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	friendRepo repository.FriendRepository,
) *wishlistDomain {
	return &wishlistDomain{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		friendRepo:   friendRepo,
	}
}

func (d *wishlistDomain) AddToWishlist(
	ctx context.Context, req *model.AddToWishlistRequest,
) (*model.AddToWishlistResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	if utf8.RuneCountInString(req.Memo) > maxMemoLength {
		return nil, errorx.New(errorx.BadRequest, "Memo too long (at most %d characters)", maxMemoLength)
	}

	if req.Priority != nil && (*req.Priority < math.MinInt32 || *req.Priority > math.MaxInt32) {
		return nil, errorx.New(errorx.BadRequest, "Priority is out of range")
	}

	product, err := d.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found product")
		}

		xcontext.Logger(ctx).Errorf("Cannot get product: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.wishlistRepo.GetByUserAndProduct(ctx, requestUserID, product.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Product is already in wishlist")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get wishlist item: %v", err)
		return nil, errorx.Unknown
	}

	item := &entity.WishlistItem{
		UserID:    requestUserID,
		ProductID: product.ID,
		Memo:      req.Memo,
	}

	if req.Priority != nil {
		item.Priority = sql.NullInt32{Int32: int32(*req.Priority), Valid: true}
	}

	if err := d.wishlistRepo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Product is already in wishlist")
		}

		xcontext.Logger(ctx).Errorf("Cannot create wishlist item: %v", err)
		return nil, errorx.Unknown
	}

	item.Product = *product
	return &model.AddToWishlistResponse{Item: model.ConvertWishlistItem(item)}, nil
}

func (d *wishlistDomain) RemoveFromWishlist(
	ctx context.Context, req *model.RemoveFromWishlistRequest,
) (*model.RemoveFromWishlistResponse, error) {
	err := d.wishlistRepo.Delete(ctx, xcontext.RequestUserID(ctx), req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found wishlist item")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete wishlist item: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveFromWishlistResponse{}, nil
}

func (d *wishlistDomain) GetMyWishlist(
	ctx context.Context, req *model.GetMyWishlistRequest,
) (*model.GetMyWishlistResponse, error) {
	items, err := d.getList(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetMyWishlistResponse{Items: items}, nil
}

// GetFriendWishlist requires the caller to have added the target as a friend.
func (d *wishlistDomain) GetFriendWishlist(
	ctx context.Context, req *model.GetFriendWishlistRequest,
) (*model.GetFriendWishlistResponse, error) {
	isFriend, err := d.friendRepo.IsFriend(ctx, xcontext.RequestUserID(ctx), req.FriendUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check friend: %v", err)
		return nil, errorx.Unknown
	}

	if !isFriend {
		return nil, errorx.New(errorx.PermissionDenied, "Not a friend")
	}

	items, err := d.getList(ctx, req.FriendUserID)
	if err != nil {
		return nil, err
	}

	return &model.GetFriendWishlistResponse{Items: items}, nil
}

func (d *wishlistDomain) getList(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	items, err := d.wishlistRepo.GetListWithProduct(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get wishlist: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.WishlistItem{}
	for i := range items {
		result = append(result, model.ConvertWishlistItem(&items[i]))
	}

	return result, nil
}
