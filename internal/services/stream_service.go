package services

import (
	"context"
	"fmt"
	"strings"

	"live-market/internal/domain/stream"
	"live-market/internal/domain/user"
	"live-market/internal/repository"
	market_errors "live-market/pkg/errors"
)

const StreamPageSize = 10

type StreamService struct {
	repo     repository.StreamRepository
	profiles *profileLookup
	cache    StreamCache
}

func NewStreamService(repo repository.StreamRepository, users repository.UserRepository, profileCache ProfileCache, streamCache StreamCache) *StreamService {
	return &StreamService{
		repo:     repo,
		profiles: newProfileLookup(users, profileCache),
		cache:    streamCache,
	}
}

type StreamMessageView struct {
	Message stream.Message
	Author  user.Profile
}

type StreamView struct {
	Stream   stream.Stream
	Seller   user.Profile
	Messages []StreamMessageView
}

type CreateStreamInput struct {
	Name        string
	Price       int64
	Description string
}

// GetStreamWithMessages returns the stream with its full history in arrival order.
func (s *StreamService) GetStreamWithMessages(ctx context.Context, streamID uint64) (StreamView, error) {
	st, err := s.loadStream(ctx, streamID)
	if err != nil {
		return StreamView{}, err
	}

	msgs, err := s.repo.GetMessages(ctx, st.ID)
	if err != nil {
		return StreamView{}, err
	}

	ids := make([]uint64, 0, len(msgs)+1)
	ids = append(ids, st.UserID)
	for _, m := range msgs {
		ids = append(ids, m.UserID)
	}
	profiles, err := s.profiles.Profiles(ctx, ids)
	if err != nil {
		return StreamView{}, err
	}

	views := make([]StreamMessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, StreamMessageView{Message: m, Author: profileOrPlaceholder(profiles, m.UserID)})
	}
	return StreamView{
		Stream:   st,
		Seller:   profileOrPlaceholder(profiles, st.UserID),
		Messages: views,
	}, nil
}

// AppendMessage stores a comment. Appends are never deduplicated.
func (s *StreamService) AppendMessage(ctx context.Context, streamID, authorID uint64, text string) (StreamMessageView, error) {
	if strings.TrimSpace(text) == "" {
		return StreamMessageView{}, fmt.Errorf("message is required: %w", market_errors.ErrInvalidInput)
	}
	st, err := s.loadStream(ctx, streamID)
	if err != nil {
		return StreamMessageView{}, err
	}

	profiles, err := s.profiles.Profiles(ctx, []uint64{authorID})
	if err != nil {
		return StreamMessageView{}, err
	}
	author, ok := profiles[authorID]
	if !ok {
		return StreamMessageView{}, fmt.Errorf("user %d: %w", authorID, market_errors.ErrNotFound)
	}

	msg := stream.Message{StreamID: st.ID, UserID: authorID, Message: text}
	if err := s.repo.CreateMessage(ctx, &msg); err != nil {
		return StreamMessageView{}, err
	}
	return StreamMessageView{Message: msg, Author: author}, nil
}

func (s *StreamService) CreateStream(ctx context.Context, sellerID uint64, in CreateStreamInput) (stream.Stream, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return stream.Stream{}, fmt.Errorf("name is required: %w", market_errors.ErrInvalidInput)
	}
	if in.Price < 0 {
		return stream.Stream{}, fmt.Errorf("price must not be negative: %w", market_errors.ErrInvalidInput)
	}

	st := stream.Stream{
		UserID:      sellerID,
		Name:        name,
		Price:       in.Price,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, &st); err != nil {
		return stream.Stream{}, err
	}
	return st, nil
}

func (s *StreamService) ListStreams(ctx context.Context, page int) ([]stream.Stream, error) {
	streams, err := s.repo.List(ctx, page, StreamPageSize)
	if err != nil {
		return nil, err
	}
	if streams == nil {
		streams = []stream.Stream{}
	}
	return streams, nil
}

func (s *StreamService) loadStream(ctx context.Context, id uint64) (stream.Stream, error) {
	if s.cache != nil {
		cached, err := s.cache.GetStream(ctx, id)
		if err != nil {
			logCacheError(ctx, "get stream", err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return stream.Stream{}, err
	}
	if s.cache != nil {
		if err := s.cache.SetStream(ctx, st); err != nil {
			logCacheError(ctx, "set stream", err)
		}
	}
	return st, nil
}
