package chat

import (
	"fmt"
	"time"
)

// Room is a private two-party conversation between a buyer and a seller.
type Room struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	BuyerID  uint64 `gorm:"not null;index"`
	SellerID uint64 `gorm:"not null;index"`
	// PairKey is the unordered participant pair, unique per room.
	PairKey   string `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt time.Time
}

func (Room) TableName() string {
	return "chat_rooms"
}

// HasParticipant reports whether userID is the buyer or the seller of the room.
func (r Room) HasParticipant(userID uint64) bool {
	return userID != 0 && (r.BuyerID == userID || r.SellerID == userID)
}

// PairKey normalizes a participant pair so (a, b) and (b, a) map to the same room.
func PairKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Message represents the chat_messages table
type Message struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	RoomID    uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null;index"`
	ChatMsg   string `gorm:"type:text;not null"`
	IsNew     bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (Message) TableName() string {
	return "chat_messages"
}
