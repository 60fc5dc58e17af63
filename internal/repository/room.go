package repository

import (
	"context"
	"time"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	Create(ctx context.Context, data *entity.Room) error
	GetByID(ctx context.Context, id int64) (*entity.Room, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Room, error)
	GetByJoinCode(ctx context.Context, joinCode string) (*entity.Room, error)
	GetListByOwner(ctx context.Context, ownerUserID int64) ([]entity.Room, error)
	GetOpenGiftListByGiftOwners(ctx context.Context, giftOwnerUserIDs []int64) ([]entity.Room, error)
	GetOpenLadderListByProduct(ctx context.Context, productID int64) ([]entity.Room, error)
	UpdateStatus(ctx context.Context, id int64, from, to entity.RoomStatus) error
	SoftDelete(ctx context.Context, id int64) error
}

type roomRepository struct{}

func NewRoomRepository() *roomRepository {
	return &roomRepository{}
}

func (r *roomRepository) Create(ctx context.Context, data *entity.Room) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*entity.Room, error) {
	var result entity.Room
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByIDForUpdate reads the room with SELECT ... FOR UPDATE. The row lock is
// held until the surrounding transaction finishes, so it must be called with a
// context carrying a transaction.
func (r *roomRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Room, error) {
	var result entity.Room
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *roomRepository) GetByJoinCode(ctx context.Context, joinCode string) (*entity.Room, error) {
	var result entity.Room
	if err := xcontext.DB(ctx).Take(&result, "join_code=?", joinCode).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *roomRepository) GetListByOwner(ctx context.Context, ownerUserID int64) ([]entity.Room, error) {
	var result []entity.Room
	err := xcontext.DB(ctx).
		Where("owner_user_id=? AND status<>?", ownerUserID, entity.RoomDeleted).
		Order("created_at DESC, id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *roomRepository) GetOpenGiftListByGiftOwners(
	ctx context.Context, giftOwnerUserIDs []int64,
) ([]entity.Room, error) {
	var result []entity.Room
	if len(giftOwnerUserIDs) == 0 {
		return result, nil
	}

	err := xcontext.DB(ctx).
		Where("gift_owner_user_id IN (?) AND status=? AND room_type=?",
			giftOwnerUserIDs, entity.RoomOpen, entity.RoomWishlistGift).
		Order("created_at DESC, id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *roomRepository) GetOpenLadderListByProduct(ctx context.Context, productID int64) ([]entity.Room, error) {
	var result []entity.Room
	err := xcontext.DB(ctx).
		Where("product_id=? AND status=? AND room_type=?",
			productID, entity.RoomOpen, entity.RoomProductLadder).
		Order("created_at DESC, id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateStatus moves the room from status `from` to `to`. It returns
// gorm.ErrRecordNotFound if the room is not in status `from` anymore.
func (r *roomRepository) UpdateStatus(ctx context.Context, id int64, from, to entity.RoomStatus) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Room{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *roomRepository) SoftDelete(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Room{}).
		Where("id=?", id).
		Updates(map[string]any{
			"status":     entity.RoomDeleted,
			"deleted_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
