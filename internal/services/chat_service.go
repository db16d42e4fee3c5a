package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"live-market/internal/domain/chat"
	"live-market/internal/domain/user"
	"live-market/internal/repository"
	market_errors "live-market/pkg/errors"

	"golang.org/x/sync/errgroup"
)

type ChatService struct {
	repo     repository.ChatRepository
	profiles *profileLookup
}

func NewChatService(repo repository.ChatRepository, users repository.UserRepository, cache ProfileCache) *ChatService {
	return &ChatService{
		repo:     repo,
		profiles: newProfileLookup(users, cache),
	}
}

// RoomSummary is a room as shown in a participant's inbox.
type RoomSummary struct {
	Room      chat.Room
	RecentMsg *chat.Message
	Buyer     user.Profile
	Seller    user.Profile
}

func (r RoomSummary) lastActivity() time.Time {
	if r.RecentMsg != nil {
		return r.RecentMsg.CreatedAt
	}
	return r.Room.CreatedAt
}

// FindOrCreateRoom returns the room for the unordered pair, creating it with the given
// roles if none exists. created reports whether this call inserted the room.
func (s *ChatService) FindOrCreateRoom(ctx context.Context, buyerID, sellerID uint64) (chat.Room, bool, error) {
	if buyerID == 0 || sellerID == 0 {
		return chat.Room{}, false, fmt.Errorf("buyerId and sellerId are required: %w", market_errors.ErrInvalidInput)
	}
	if buyerID == sellerID {
		return chat.Room{}, false, fmt.Errorf("buyer and seller must differ: %w", market_errors.ErrInvalidInput)
	}

	key := chat.PairKey(buyerID, sellerID)
	room, err := s.repo.GetRoomByPairKey(ctx, key)
	if err == nil {
		return room, false, nil
	}
	if !errors.Is(err, market_errors.ErrNotFound) {
		return chat.Room{}, false, err
	}

	profiles, err := s.profiles.Profiles(ctx, []uint64{buyerID, sellerID})
	if err != nil {
		return chat.Room{}, false, err
	}
	for _, id := range []uint64{buyerID, sellerID} {
		if _, ok := profiles[id]; !ok {
			return chat.Room{}, false, fmt.Errorf("user %d: %w", id, market_errors.ErrNotFound)
		}
	}

	room = chat.Room{BuyerID: buyerID, SellerID: sellerID, PairKey: key}
	if err := s.repo.CreateRoom(ctx, &room); err != nil {
		if !errors.Is(err, market_errors.ErrAlreadyExists) {
			return chat.Room{}, false, err
		}
		// Lost the insert race; the winner's row is authoritative.
		existing, getErr := s.repo.GetRoomByPairKey(ctx, key)
		if getErr != nil {
			return chat.Room{}, false, getErr
		}
		return existing, false, nil
	}
	return room, true, nil
}

// ListRoomsForUser returns the user's rooms, most recently active first.
func (s *ChatService) ListRoomsForUser(ctx context.Context, userID uint64) ([]RoomSummary, error) {
	rooms, err := s.repo.GetUserRooms(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return []RoomSummary{}, nil
	}

	roomIDs := make([]uint64, 0, len(rooms))
	userIDs := make([]uint64, 0, len(rooms)*2)
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
		userIDs = append(userIDs, r.BuyerID, r.SellerID)
	}

	var (
		latest   map[uint64]chat.Message
		profiles map[uint64]user.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		latest, err = s.repo.GetLatestMessages(gctx, roomIDs)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.profiles.Profiles(gctx, userIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		sum := RoomSummary{
			Room:   r,
			Buyer:  profileOrPlaceholder(profiles, r.BuyerID),
			Seller: profileOrPlaceholder(profiles, r.SellerID),
		}
		if m, ok := latest[r.ID]; ok {
			msg := m
			sum.RecentMsg = &msg
		}
		summaries = append(summaries, sum)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		ai, aj := summaries[i].lastActivity(), summaries[j].lastActivity()
		if !ai.Equal(aj) {
			return ai.After(aj)
		}
		return summaries[i].Room.ID > summaries[j].Room.ID
	})
	return summaries, nil
}

// DeleteRoom removes the room and its history. An unknown id deletes nothing and is not an error.
func (s *ChatService) DeleteRoom(ctx context.Context, roomID, requesterID uint64) (int64, error) {
	room, err := s.repo.GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, market_errors.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !room.HasParticipant(requesterID) {
		return 0, market_errors.ErrForbidden
	}
	return s.repo.DeleteRoom(ctx, roomID)
}

func (s *ChatService) SendRoomMessage(ctx context.Context, roomID, authorID uint64, text string) (chat.Message, error) {
	if strings.TrimSpace(text) == "" {
		return chat.Message{}, fmt.Errorf("message is required: %w", market_errors.ErrInvalidInput)
	}
	room, err := s.participantRoom(ctx, roomID, authorID)
	if err != nil {
		return chat.Message{}, err
	}

	msg := chat.Message{
		RoomID:  room.ID,
		UserID:  authorID,
		ChatMsg: text,
		IsNew:   true,
	}
	if err := s.repo.CreateMessage(ctx, &msg); err != nil {
		return chat.Message{}, err
	}
	return msg, nil
}

// ListRoomMessages returns the history as it was before the read, then marks the
// counterpart's messages as read so the caller can still tell which ones were new.
func (s *ChatService) ListRoomMessages(ctx context.Context, roomID, readerID uint64) ([]chat.Message, error) {
	room, err := s.participantRoom(ctx, roomID, readerID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.repo.GetRoomMessages(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.MarkRead(ctx, room.ID, readerID); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []chat.Message{}
	}
	return msgs, nil
}

func (s *ChatService) participantRoom(ctx context.Context, roomID, userID uint64) (chat.Room, error) {
	room, err := s.repo.GetRoomByID(ctx, roomID)
	if err != nil {
		return chat.Room{}, err
	}
	if !room.HasParticipant(userID) {
		return chat.Room{}, market_errors.ErrForbidden
	}
	return room, nil
}

func profileOrPlaceholder(profiles map[uint64]user.Profile, id uint64) user.Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return user.Profile{ID: id}
}
