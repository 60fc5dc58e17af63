package repository

import (
	"context"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FriendRepository interface {
	Create(ctx context.Context, data *entity.Friend) error
	Get(ctx context.Context, ownerUserID, friendUserID int64) (*entity.Friend, error)
	IsFriend(ctx context.Context, ownerUserID, friendUserID int64) (bool, error)
	GetListByOwnerID(ctx context.Context, ownerUserID int64, offset, limit int) ([]entity.Friend, error)
	GetFriendIDs(ctx context.Context, ownerUserID int64) ([]int64, error)
	CountByOwnerID(ctx context.Context, ownerUserID int64) (int64, error)
	Delete(ctx context.Context, ownerUserID, friendUserID int64) error
}

type friendRepository struct{}

func NewFriendRepository() *friendRepository {
	return &friendRepository{}
}

func (r *friendRepository) Create(ctx context.Context, data *entity.Friend) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *friendRepository) Get(ctx context.Context, ownerUserID, friendUserID int64) (*entity.Friend, error) {
	var result entity.Friend
	err := xcontext.DB(ctx).
		Where("owner_user_id=? AND friend_user_id=?", ownerUserID, friendUserID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *friendRepository) IsFriend(ctx context.Context, ownerUserID, friendUserID int64) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Friend{}).
		Where("owner_user_id=? AND friend_user_id=?", ownerUserID, friendUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *friendRepository) GetListByOwnerID(
	ctx context.Context, ownerUserID int64, offset, limit int,
) ([]entity.Friend, error) {
	var result []entity.Friend
	err := xcontext.DB(ctx).
		Preload("FriendUser").
		Where("owner_user_id=?", ownerUserID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *friendRepository) GetFriendIDs(ctx context.Context, ownerUserID int64) ([]int64, error) {
	var result []int64
	err := xcontext.DB(ctx).Model(&entity.Friend{}).
		Where("owner_user_id=?", ownerUserID).
		Pluck("friend_user_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *friendRepository) CountByOwnerID(ctx context.Context, ownerUserID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Friend{}).
		Where("owner_user_id=?", ownerUserID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *friendRepository) Delete(ctx context.Context, ownerUserID, friendUserID int64) error {
	tx := xcontext.DB(ctx).
		Where("owner_user_id=? AND friend_user_id=?", ownerUserID, friendUserID).
		Delete(&entity.Friend{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
