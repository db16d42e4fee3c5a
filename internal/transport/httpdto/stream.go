package httpdto

import (
	"time"

	"live-market/internal/domain/stream"
)

// CreateStreamRequest is used for POST /streams
type CreateStreamRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       Price  `json:"price"`
	Description string `json:"description"`
}

// StreamMessageRequest is used for POST /streams/:id/messages
type StreamMessageRequest struct {
	Message string `json:"message"`
}

type Stream struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"userId"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created"`
}

type StreamMessage struct {
	ID        uint64      `json:"id"`
	StreamID  uint64      `json:"streamId"`
	UserID    uint64      `json:"userId"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created"`
	User      UserProfile `json:"user"`
}

type StreamDetail struct {
	Stream
	User     UserProfile     `json:"user"`
	Messages []StreamMessage `json:"messages"`
}

type StreamDetailResponse struct {
	OK     bool         `json:"ok"`
	Stream StreamDetail `json:"stream"`
}

type StreamResponse struct {
	OK     bool   `json:"ok"`
	Stream Stream `json:"stream"`
}

type StreamListResponse struct {
	OK      bool     `json:"ok"`
	Streams []Stream `json:"streams"`
}

type StreamMessageResponse struct {
	OK      bool          `json:"ok"`
	Message StreamMessage `json:"message"`
}

func NewStream(s stream.Stream) Stream {
	return Stream{
		ID:          s.ID,
		UserID:      s.UserID,
		Name:        s.Name,
		Price:       s.Price,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}
