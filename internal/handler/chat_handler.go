package handler

import (
	"net/http"

	"live-market/internal/services"
	"live-market/internal/transport/httpdto"
	market_errors "live-market/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// FindOrCreate opens the room between a buyer and a seller. The caller must be one of them.
func (h *ChatHandler) FindOrCreate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req httpdto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if userID != req.BuyerID && userID != req.SellerID {
		writeError(c, market_errors.ErrForbidden)
		return
	}

	room, created, err := h.service.FindOrCreateRoom(c.Request.Context(), req.BuyerID, req.SellerID)
	if err != nil {
		writeError(c, err)
		return
	}

	dto := httpdto.NewChatRoom(room)
	if created {
		c.JSON(http.StatusCreated, httpdto.ChatRoomResponse{OK: true, CreateChat: &dto})
		return
	}
	c.JSON(http.StatusOK, httpdto.ChatRoomResponse{OK: true, ChatRoomList: &dto})
}

func (h *ChatHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	rooms, err := h.service.ListRoomsForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]httpdto.ChatRoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, newChatRoomSummary(r))
	}
	c.JSON(http.StatusOK, httpdto.ChatRoomListResponse{OK: true, ChatRoomList: out})
}

func (h *ChatHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var q httpdto.DeleteChatQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	roomID, ok := parseID(q.RoomID)
	if !ok {
		writeBadRequest(c, "invalid roomId")
		return
	}

	count, err := h.service.DeleteRoom(c.Request.Context(), roomID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.DeleteChatRoomResponse{OK: true, DelChatRoom: httpdto.DeleteCount{Count: count}})
}

func (h *ChatHandler) Messages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	roomID, ok := parseID(c.Param("id"))
	if !ok {
		writeBadRequest(c, "invalid room id")
		return
	}

	msgs, err := h.service.ListRoomMessages(c.Request.Context(), roomID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]httpdto.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, httpdto.NewChatMessage(m))
	}
	c.JSON(http.StatusOK, httpdto.ChatMessagesResponse{OK: true, Messages: out})
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	roomID, ok := parseID(c.Param("id"))
	if !ok {
		writeBadRequest(c, "invalid room id")
		return
	}
	var req httpdto.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	msg, err := h.service.SendRoomMessage(c.Request.Context(), roomID, userID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.ChatMessageResponse{OK: true, Message: httpdto.NewChatMessage(msg)})
}
