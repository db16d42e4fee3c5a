package repository

import (
	"context"

	"github.com/google/uuid"

	"live-market/internal/domain/chat"
	"live-market/internal/domain/product"
	"live-market/internal/domain/stream"
	"live-market/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uint64) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	// GetProfiles returns the profiles of the ids that exist. Unknown ids are absent from the map.
	GetProfiles(ctx context.Context, ids []uint64) (map[uint64]user.Profile, error)

	CreateSession(ctx context.Context, s *user.UserSession) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (user.UserSession, error)
	RevokeSession(ctx context.Context, id uuid.UUID) error
}

type ChatRepository interface {
	CreateRoom(ctx context.Context, r *chat.Room) error
	GetRoomByID(ctx context.Context, id uint64) (chat.Room, error)
	GetRoomByPairKey(ctx context.Context, pairKey string) (chat.Room, error)
	GetUserRooms(ctx context.Context, userID uint64) ([]chat.Room, error)
	// DeleteRoom removes the room and its messages and reports how many rooms were removed.
	DeleteRoom(ctx context.Context, id uint64) (int64, error)

	CreateMessage(ctx context.Context, m *chat.Message) error
	GetRoomMessages(ctx context.Context, roomID uint64) ([]chat.Message, error)
	GetLatestMessages(ctx context.Context, roomIDs []uint64) (map[uint64]chat.Message, error)
	MarkRead(ctx context.Context, roomID, readerID uint64) (int64, error)
}

type StreamRepository interface {
	Create(ctx context.Context, s *stream.Stream) error
	GetByID(ctx context.Context, id uint64) (stream.Stream, error)
	List(ctx context.Context, page, limit int) ([]stream.Stream, error)

	CreateMessage(ctx context.Context, m *stream.Message) error
	GetMessages(ctx context.Context, streamID uint64) ([]stream.Message, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	GetByID(ctx context.Context, id uint64) (product.Product, error)
	List(ctx context.Context, page, limit int) ([]product.Product, error)

	CountFavorites(ctx context.Context, productIDs []uint64) (map[uint64]int64, error)
	GetLikedProductIDs(ctx context.Context, userID uint64, productIDs []uint64) (map[uint64]bool, error)
	AddFavorite(ctx context.Context, f *product.Favorite) error
	RemoveFavorite(ctx context.Context, userID, productID uint64) (int64, error)
	GetUserFavorites(ctx context.Context, userID uint64) ([]product.Product, error)
}
