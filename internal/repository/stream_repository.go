package repository

import (
	"context"
	"errors"

	"live-market/internal/domain/stream"
	market_errors "live-market/pkg/errors"

	"gorm.io/gorm"
)

type PostgresStreamRepository struct {
	db *gorm.DB
}

func NewStreamRepository(db *gorm.DB) StreamRepository {
	return &PostgresStreamRepository{db: db}
}

func (r *PostgresStreamRepository) Create(ctx context.Context, s *stream.Stream) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *PostgresStreamRepository) GetByID(ctx context.Context, id uint64) (stream.Stream, error) {
	var s stream.Stream
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return stream.Stream{}, market_errors.ErrNotFound
		}
		return stream.Stream{}, err
	}
	return s, nil
}

func (r *PostgresStreamRepository) List(ctx context.Context, page, limit int) ([]stream.Stream, error) {
	var streams []stream.Stream
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(pageOffset(page, limit)).
		Limit(limit).
		Find(&streams).Error
	return streams, err
}

func (r *PostgresStreamRepository) CreateMessage(ctx context.Context, m *stream.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresStreamRepository) GetMessages(ctx context.Context, streamID uint64) ([]stream.Message, error) {
	var msgs []stream.Message
	err := r.db.WithContext(ctx).
		Where("stream_id = ?", streamID).
		Order("id ASC").
		Find(&msgs).Error
	return msgs, err
}
