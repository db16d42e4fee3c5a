package stream

import "time"

// Stream is a seller's live-commerce session.
type Stream struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID      uint64 `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(128);not null"`
	Price       int64  `gorm:"not null;default:0"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Stream) TableName() string {
	return "streams"
}

// Message is a public comment posted into a stream.
type Message struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	StreamID  uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null;index"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Message) TableName() string {
	return "stream_messages"
}
