package handler

import (
	"net/http"

	"live-market/internal/services"
	"live-market/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	service *services.StreamService
}

func NewStreamHandler(service *services.StreamService) *StreamHandler {
	return &StreamHandler{service: service}
}

// Get returns the stream and its whole comment history. Clients poll it.
func (h *StreamHandler) Get(c *gin.Context) {
	streamID, ok := parseID(c.Param("id"))
	if !ok {
		writeBadRequest(c, "invalid stream id")
		return
	}
	view, err := h.service.GetStreamWithMessages(c.Request.Context(), streamID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.StreamDetailResponse{OK: true, Stream: newStreamDetail(view)})
}

func (h *StreamHandler) AppendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	streamID, ok := parseID(c.Param("id"))
	if !ok {
		writeBadRequest(c, "invalid stream id")
		return
	}
	var req httpdto.StreamMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	msg, err := h.service.AppendMessage(c.Request.Context(), streamID, userID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.StreamMessageResponse{OK: true, Message: newStreamMessage(msg)})
}

func (h *StreamHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req httpdto.CreateStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	st, err := h.service.CreateStream(c.Request.Context(), userID, services.CreateStreamInput{
		Name:        req.Name,
		Price:       int64(req.Price),
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.StreamResponse{OK: true, Stream: httpdto.NewStream(st)})
}

func (h *StreamHandler) List(c *gin.Context) {
	var q httpdto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBadRequest(c, "invalid page")
		return
	}
	streams, err := h.service.ListStreams(c.Request.Context(), q.Page)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]httpdto.Stream, 0, len(streams))
	for _, s := range streams {
		out = append(out, httpdto.NewStream(s))
	}
	c.JSON(http.StatusOK, httpdto.StreamListResponse{OK: true, Streams: out})
}
