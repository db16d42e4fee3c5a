package handler

import (
	"live-market/internal/services"
	"live-market/internal/transport/httpdto"
)

// Converters from service views to response DTOs.

func newChatRoomSummary(s services.RoomSummary) httpdto.ChatRoomSummary {
	out := httpdto.ChatRoomSummary{
		ChatRoom: httpdto.NewChatRoom(s.Room),
		Buyer:    httpdto.NewUserProfile(s.Buyer),
		Seller:   httpdto.NewUserProfile(s.Seller),
	}
	if s.RecentMsg != nil {
		out.RecentMsg = &httpdto.RecentMsg{ChatMsg: s.RecentMsg.ChatMsg, IsNew: s.RecentMsg.IsNew, UserID: s.RecentMsg.UserID}
	}
	return out
}

func newProductListItem(v services.ProductView) httpdto.ProductListItem {
	return httpdto.ProductListItem{Product: httpdto.NewProduct(v.Product), FavCount: v.FavCount, IsLiked: v.IsLiked}
}

func newStreamMessage(v services.StreamMessageView) httpdto.StreamMessage {
	return httpdto.StreamMessage{
		ID:        v.Message.ID,
		StreamID:  v.Message.StreamID,
		UserID:    v.Message.UserID,
		Message:   v.Message.Message,
		CreatedAt: v.Message.CreatedAt,
		User:      httpdto.NewUserProfile(v.Author),
	}
}

func newStreamDetail(v services.StreamView) httpdto.StreamDetail {
	msgs := make([]httpdto.StreamMessage, 0, len(v.Messages))
	for _, m := range v.Messages {
		msgs = append(msgs, newStreamMessage(m))
	}
	return httpdto.StreamDetail{
		Stream:   httpdto.NewStream(v.Stream),
		User:     httpdto.NewUserProfile(v.Seller),
		Messages: msgs,
	}
}

func newAuthResponse(res services.AuthResponse) httpdto.AuthResponse {
	return httpdto.AuthResponse{
		OK:        true,
		Token:     res.AccessToken,
		ExpiresIn: res.ExpiresIn,
		User:      httpdto.NewUserProfile(res.User),
	}
}

func newPresignedUpload(res services.PresignResult) httpdto.PresignedUpload {
	return httpdto.PresignedUpload{
		UploadURL: res.UploadURL,
		Headers:   res.Headers,
		Key:       res.Key,
		PublicURL: res.PublicURL,
	}
}
