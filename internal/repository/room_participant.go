package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/giftladder/backend/internal/entity"
	"github.com/giftladder/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// RoomParticipantUpdate lists the participant columns which can be changed
// after creation. Nil fields are left untouched.
type RoomParticipantUpdate struct {
	State    *entity.ParticipantState
	IsReady  *bool
	JoinedAt *time.Time
	LeftAt   *sql.NullTime
}

func (u RoomParticipantUpdate) columns() map[string]any {
	columns := map[string]any{}
	if u.State != nil {
		columns["state"] = *u.State
	}

	if u.IsReady != nil {
		columns["is_ready"] = *u.IsReady
	}

	if u.JoinedAt != nil {
		columns["joined_at"] = *u.JoinedAt
	}

	if u.LeftAt != nil {
		columns["left_at"] = *u.LeftAt
	}

	return columns
}

type RoomParticipantRepository interface {
	Create(ctx context.Context, data *entity.RoomParticipant) error
	Get(ctx context.Context, roomID, userID int64) (*entity.RoomParticipant, error)
	GetListByRoom(ctx context.Context, roomID int64, state entity.ParticipantState) ([]entity.RoomParticipant, error)
	GetReadyList(ctx context.Context, roomID int64) ([]entity.RoomParticipant, error)
	CountJoined(ctx context.Context, roomID int64) (int64, error)
	CountJoinedByRooms(ctx context.Context, roomIDs []int64) (map[int64]int64, error)
	CountReady(ctx context.Context, roomID int64) (int64, error)
	Update(ctx context.Context, id int64, data RoomParticipantUpdate) error
}

type roomParticipantRepository struct{}

func NewRoomParticipantRepository() *roomParticipantRepository {
	return &roomParticipantRepository{}
}

func (r *roomParticipantRepository) Create(ctx context.Context, data *entity.RoomParticipant) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *roomParticipantRepository) Get(ctx context.Context, roomID, userID int64) (*entity.RoomParticipant, error) {
	var result entity.RoomParticipant
	err := xcontext.DB(ctx).
		Preload("User").
		Where("room_id=? AND user_id=?", roomID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *roomParticipantRepository) GetListByRoom(
	ctx context.Context, roomID int64, state entity.ParticipantState,
) ([]entity.RoomParticipant, error) {
	var result []entity.RoomParticipant
	err := xcontext.DB(ctx).
		Preload("User").
		Where("room_id=? AND state=?", roomID, state).
		Order("joined_at ASC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetReadyList returns the JOINED participants of the room which are ready.
func (r *roomParticipantRepository) GetReadyList(ctx context.Context, roomID int64) ([]entity.RoomParticipant, error) {
	var result []entity.RoomParticipant
	err := xcontext.DB(ctx).
		Preload("User").
		Where("room_id=? AND state=? AND is_ready=?", roomID, entity.ParticipantJoined, true).
		Order("joined_at ASC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *roomParticipantRepository) CountJoined(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.RoomParticipant{}).
		Where("room_id=? AND state=?", roomID, entity.ParticipantJoined).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *roomParticipantRepository) CountJoinedByRooms(
	ctx context.Context, roomIDs []int64,
) (map[int64]int64, error) {
	result := map[int64]int64{}
	if len(roomIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RoomID int64
		Count  int64
	}

	err := xcontext.DB(ctx).
		Model(&entity.RoomParticipant{}).
		Select("room_id, COUNT(*) AS count").
		Where("room_id IN (?) AND state=?", roomIDs, entity.ParticipantJoined).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RoomID] = row.Count
	}

	return result, nil
}

func (r *roomParticipantRepository) CountReady(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.RoomParticipant{}).
		Where("room_id=? AND state=? AND is_ready=?", roomID, entity.ParticipantJoined, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *roomParticipantRepository) Update(ctx context.Context, id int64, data RoomParticipantUpdate) error {
	columns := data.columns()
	if len(columns) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).
		Model(&entity.RoomParticipant{}).
		Where("id=?", id).
		Updates(columns)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
