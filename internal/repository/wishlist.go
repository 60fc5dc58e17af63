package repository

import (
	"context"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(ctx context.Context, data *entity.WishlistItem) error
	GetByID(ctx context.Context, id, userID int64) (*entity.WishlistItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID int64) (*entity.WishlistItem, error)
	GetListWithProduct(ctx context.Context, userID int64) ([]entity.WishlistItem, error)
	Delete(ctx context.Context, userID, productID int64) error
}

type wishlistRepository struct{}

func NewWishlistRepository() *wishlistRepository {
	return &wishlistRepository{}
}

func (r *wishlistRepository) Create(ctx context.Context, data *entity.WishlistItem) error {
	return xcontext.DB(ctx).Create(data).Error
}

// GetByID returns the item only if it belongs to userID.
func (r *wishlistRepository) GetByID(ctx context.Context, id, userID int64) (*entity.WishlistItem, error) {
	var result entity.WishlistItem
	err := xcontext.DB(ctx).Where("id=? AND user_id=?", id, userID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *wishlistRepository) GetByUserAndProduct(
	ctx context.Context, userID, productID int64,
) (*entity.WishlistItem, error) {
	var result entity.WishlistItem
	err := xcontext.DB(ctx).
		Where("user_id=? AND product_id=?", userID, productID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *wishlistRepository) GetListWithProduct(ctx context.Context, userID int64) ([]entity.WishlistItem, error) {
	var result []entity.WishlistItem
	err := xcontext.DB(ctx).
		Joins("Product").
		Where("wishlist_items.user_id=?", userID).
		Order("wishlist_items.created_at DESC, wishlist_items.id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, userID, productID int64) error {
	tx := xcontext.DB(ctx).
		Where("user_id=? AND product_id=?", userID, productID).
		Delete(&entity.WishlistItem{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
