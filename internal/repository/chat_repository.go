package repository

import (
	"context"
	"errors"

	"live-market/internal/domain/chat"
	market_errors "live-market/pkg/errors"

	"gorm.io/gorm"
)

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) CreateRoom(ctx context.Context, room *chat.Room) error {
	res := r.db.WithContext(ctx).Create(room)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return market_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresChatRepository) GetRoomByID(ctx context.Context, id uint64) (chat.Room, error) {
	var room chat.Room
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Room{}, market_errors.ErrNotFound
		}
		return chat.Room{}, err
	}
	return room, nil
}

func (r *PostgresChatRepository) GetRoomByPairKey(ctx context.Context, pairKey string) (chat.Room, error) {
	var room chat.Room
	err := r.db.WithContext(ctx).Where("pair_key = ?", pairKey).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Room{}, market_errors.ErrNotFound
		}
		return chat.Room{}, err
	}
	return room, nil
}

func (r *PostgresChatRepository) GetUserRooms(ctx context.Context, userID uint64) ([]chat.Room, error) {
	var rooms []chat.Room
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("id DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *PostgresChatRepository) DeleteRoom(ctx context.Context, id uint64) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&chat.Message{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&chat.Room{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *PostgresChatRepository) CreateMessage(ctx context.Context, m *chat.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresChatRepository) GetRoomMessages(ctx context.Context, roomID uint64) ([]chat.Message, error) {
	var msgs []chat.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *PostgresChatRepository) GetLatestMessages(ctx context.Context, roomIDs []uint64) (map[uint64]chat.Message, error) {
	latest := make(map[uint64]chat.Message, len(roomIDs))
	if len(roomIDs) == 0 {
		return latest, nil
	}

	db := r.db.WithContext(ctx)
	sub := db.Model(&chat.Message{}).
		Select("MAX(id)").
		Where("room_id IN ?", roomIDs).
		Group("room_id")

	var msgs []chat.Message
	if err := db.Where("id IN (?)", sub).Find(&msgs).Error; err != nil {
		return nil, err
	}
	for _, m := range msgs {
		latest[m.RoomID] = m
	}
	return latest, nil
}

// MarkRead clears the unread flag on messages in the room written by anyone but readerID.
func (r *PostgresChatRepository) MarkRead(ctx context.Context, roomID, readerID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("room_id = ? AND user_id <> ? AND is_new = ?", roomID, readerID, true).
		Update("is_new", false)
	return res.RowsAffected, res.Error
}
