package repository

import (
	"context"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/xcontext"
)

type GameRepository interface {
	Create(ctx context.Context, data *entity.Game) error
	CreateResult(ctx context.Context, data *entity.GameResult) error
	CreatePayers(ctx context.Context, data []entity.GamePayer) error
	GetByRoomID(ctx context.Context, roomID int64) (*entity.Game, error)
	CountByRoomID(ctx context.Context, roomID int64) (int64, error)
	GetResultByGameID(ctx context.Context, gameID int64) (*entity.GameResult, error)
	GetPayersByResultID(ctx context.Context, gameResultID int64) ([]entity.GamePayer, error)
}

type gameRepository struct{}

func NewGameRepository() *gameRepository {
	return &gameRepository{}
}

func (r *gameRepository) Create(ctx context.Context, data *entity.Game) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *gameRepository) CreateResult(ctx context.Context, data *entity.GameResult) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *gameRepository) CreatePayers(ctx context.Context, data []entity.GamePayer) error {
	if len(data) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(&data).Error
}

func (r *gameRepository) GetByRoomID(ctx context.Context, roomID int64) (*entity.Game, error) {
	var result entity.Game
	if err := xcontext.DB(ctx).Take(&result, "room_id=?", roomID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *gameRepository) CountByRoomID(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Game{}).
		Where("room_id=?", roomID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *gameRepository) GetResultByGameID(ctx context.Context, gameID int64) (*entity.GameResult, error) {
	var result entity.GameResult
	if err := xcontext.DB(ctx).Take(&result, "game_id=?", gameID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *gameRepository) GetPayersByResultID(ctx context.Context, gameResultID int64) ([]entity.GamePayer, error) {
	var result []entity.GamePayer
	err := xcontext.DB(ctx).
		Preload("User").
		Where("game_result_id=?", gameResultID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
