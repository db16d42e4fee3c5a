package httpdto

import (
	"time"

	"live-market/internal/domain/chat"
	"live-market/internal/domain/user"
)

// CreateChatRequest is used for POST /chat
type CreateChatRequest struct {
	BuyerID  uint64 `json:"buyerId" binding:"required"`
	SellerID uint64 `json:"sellerId" binding:"required"`
}

// DeleteChatQuery holds the query of DELETE /chat
type DeleteChatQuery struct {
	RoomID string `form:"roomId" binding:"required"`
}

// SendChatMessageRequest is used for POST /chat/:id/messages
type SendChatMessageRequest struct {
	Message string `json:"message"`
}

type ChatRoom struct {
	ID        uint64    `json:"id"`
	BuyerID   uint64    `json:"buyerId"`
	SellerID  uint64    `json:"sellerId"`
	CreatedAt time.Time `json:"created"`
}

type RecentMsg struct {
	ChatMsg string `json:"chatMsg"`
	IsNew   bool   `json:"isNew"`
	UserID  uint64 `json:"userId"`
}

type ChatRoomSummary struct {
	ChatRoom
	RecentMsg *RecentMsg  `json:"recentMsg"`
	Buyer     UserProfile `json:"buyer"`
	Seller    UserProfile `json:"seller"`
}

type ChatMessage struct {
	ID        uint64    `json:"id"`
	RoomID    uint64    `json:"roomId"`
	UserID    uint64    `json:"userId"`
	ChatMsg   string    `json:"chatMsg"`
	IsNew     bool      `json:"isNew"`
	CreatedAt time.Time `json:"created"`
}

// ChatRoomResponse answers POST /chat. Exactly one of the two fields is set.
type ChatRoomResponse struct {
	OK           bool      `json:"ok"`
	ChatRoomList *ChatRoom `json:"chatRoomList,omitempty"`
	CreateChat   *ChatRoom `json:"createChat,omitempty"`
}

type ChatRoomListResponse struct {
	OK           bool              `json:"ok"`
	ChatRoomList []ChatRoomSummary `json:"chatRoomList"`
}

type DeleteCount struct {
	Count int64 `json:"count"`
}

type DeleteChatRoomResponse struct {
	OK          bool        `json:"ok"`
	DelChatRoom DeleteCount `json:"delChatRoom"`
}

type ChatMessagesResponse struct {
	OK       bool          `json:"ok"`
	Messages []ChatMessage `json:"messages"`
}

type ChatMessageResponse struct {
	OK      bool        `json:"ok"`
	Message ChatMessage `json:"message"`
}

func NewChatRoom(r chat.Room) ChatRoom {
	return ChatRoom{ID: r.ID, BuyerID: r.BuyerID, SellerID: r.SellerID, CreatedAt: r.CreatedAt}
}


func NewChatMessage(m chat.Message) ChatMessage {
	return ChatMessage{
		ID:        m.ID,
		RoomID:    m.RoomID,
		UserID:    m.UserID,
		ChatMsg:   m.ChatMsg,
		IsNew:     m.IsNew,
		CreatedAt: m.CreatedAt,
	}
}

func NewUserProfile(p user.Profile) UserProfile {
	return UserProfile{ID: p.ID, Name: p.Name, Avatar: p.Avatar}
}
