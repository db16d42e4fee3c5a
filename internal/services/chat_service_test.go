package services

import (
	"context"
	"testing"

	"live-market/internal/domain/chat"
	"live-market/internal/repository"
	"live-market/internal/testutil"
	market_errors "live-market/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newChatService(t *testing.T) (*ChatService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	return NewChatService(repository.NewChatRepository(db), repository.NewUserRepository(db), nil), db
}

// racingChatRepository hides existing rooms from the first pair-key lookups,
// the way a concurrent request that has not yet seen the winner's insert would.
type racingChatRepository struct {
	repository.ChatRepository
	misses int
}

func (r *racingChatRepository) GetRoomByPairKey(ctx context.Context, key string) (chat.Room, error) {
	if r.misses > 0 {
		r.misses--
		return chat.Room{}, market_errors.ErrNotFound
	}
	return r.ChatRepository.GetRoomByPairKey(ctx, key)
}

func TestFindOrCreateRoom_CreatesThenReturnsSameRoom(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()
	buyer := testutil.CreateUser(t, db, "buyer")
	seller := testutil.CreateUser(t, db, "seller")

	room, created, err := svc.FindOrCreateRoom(ctx, buyer.ID, seller.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, buyer.ID, room.BuyerID)
	assert.Equal(t, seller.ID, room.SellerID)

	again, created, err := svc.FindOrCreateRoom(ctx, buyer.ID, seller.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, room.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&chat.Room{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateRoom_NormalizesPair(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateUser(t, db, "bob")

	first, _, err := svc.FindOrCreateRoom(ctx, a.ID, b.ID)
	require.NoError(t, err)

	reversed, created, err := svc.FindOrCreateRoom(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, reversed.ID)
	assert.Equal(t, a.ID, reversed.BuyerID, "roles stay as first created")
	assert.Equal(t, b.ID, reversed.SellerID)
}

func TestFindOrCreateRoom_Validation(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "solo")

	_, _, err := svc.FindOrCreateRoom(ctx, 0, u.ID)
	assert.ErrorIs(t, err, market_errors.ErrInvalidInput)

	_, _, err = svc.FindOrCreateRoom(ctx, u.ID, u.ID)
	assert.ErrorIs(t, err, market_errors.ErrInvalidInput)

	_, _, err = svc.FindOrCreateRoom(ctx, u.ID, 424242)
	assert.ErrorIs(t, err, market_errors.ErrNotFound)
}

func TestFindOrCreateRoom_LosingInsertRaceRereadsWinner(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	buyer := testutil.CreateUser(t, db, "buyer")
	seller := testutil.CreateUser(t, db, "seller")

	winner := chat.Room{BuyerID: buyer.ID, SellerID: seller.ID, PairKey: chat.PairKey(buyer.ID, seller.ID)}
	require.NoError(t, db.Create(&winner).Error)

	racing := &racingChatRepository{ChatRepository: repository.NewChatRepository(db), misses: 1}
	svc := NewChatService(racing, repository.NewUserRepository(db), nil)

	room, created, err := svc.FindOrCreateRoom(ctx, seller.ID, buyer.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, room.ID)
}

func TestListRoomsForUser_OnlyOwnRoomsByActivity(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()
	me := testutil.CreateUser(t, db, "me")
	s1 := testutil.CreateUser(t, db, "seller one")
	s2 := testutil.CreateUser(t, db, "seller two")
	other := testutil.CreateUser(t, db, "other")

	older, _, err := svc.FindOrCreateRoom(ctx, me.ID, s1.ID)
	require.NoError(t, err)
	newer, _, err := svc.FindOrCreateRoom(ctx, me.ID, s2.ID)
	require.NoError(t, err)
	_, _, err = svc.FindOrCreateRoom(ctx, other.ID, s1.ID)
	require.NoError(t, err)

	rooms, err := svc.ListRoomsForUser(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, newer.ID, rooms[0].Room.ID)
	assert.Nil(t, rooms[0].RecentMsg)

	_, err = svc.SendRoomMessage(ctx, older.ID, s1.ID, "still interested?")
	require.NoError(t, err)

	rooms, err = svc.ListRoomsForUser(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, older.ID, rooms[0].Room.ID)
	require.NotNil(t, rooms[0].RecentMsg)
	assert.Equal(t, "still interested?", rooms[0].RecentMsg.ChatMsg)
	assert.True(t, rooms[0].RecentMsg.IsNew)
	assert.Equal(t, s1.ID, rooms[0].RecentMsg.UserID)
	assert.Equal(t, "me", rooms[0].Buyer.Name)
	assert.Equal(t, "seller one", rooms[0].Seller.Name)

	for _, r := range rooms {
		assert.True(t, r.Room.HasParticipant(me.ID))
	}
}

func TestListRoomsForUser_Empty(t *testing.T) {
	svc, db := newChatService(t)
	u := testutil.CreateUser(t, db, "lonely")

	rooms, err := svc.ListRoomsForUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
}

func TestDeleteRoom(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()
	buyer := testutil.CreateUser(t, db, "buyer")
	seller := testutil.CreateUser(t, db, "seller")
	outsider := testutil.CreateUser(t, db, "outsider")

	count, err := svc.DeleteRoom(ctx, 9999, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	room, _, err := svc.FindOrCreateRoom(ctx, buyer.ID, seller.ID)
	require.NoError(t, err)
	_, err = svc.SendRoomMessage(ctx, room.ID, buyer.ID, "hello")
	require.NoError(t, err)

	_, err = svc.DeleteRoom(ctx, room.ID, outsider.ID)
	assert.ErrorIs(t, err, market_errors.ErrForbidden)

	count, err = svc.DeleteRoom(ctx, room.ID, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var msgs int64
	require.NoError(t, db.Model(&chat.Message{}).Where("room_id = ?", room.ID).Count(&msgs).Error)
	assert.Zero(t, msgs)

	_, created, err := svc.FindOrCreateRoom(ctx, buyer.ID, seller.ID)
	require.NoError(t, err)
	assert.True(t, created, "pair can be reopened after deletion")
}

func TestSendRoomMessage_Rules(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()
	buyer := testutil.CreateUser(t, db, "buyer")
	seller := testutil.CreateUser(t, db, "seller")
	outsider := testutil.CreateUser(t, db, "outsider")
	room, _, err := svc.FindOrCreateRoom(ctx, buyer.ID, seller.ID)
	require.NoError(t, err)

	_, err = svc.SendRoomMessage(ctx, room.ID, outsider.ID, "let me in")
	assert.ErrorIs(t, err, market_errors.ErrForbidden)

	_, err = svc.SendRoomMessage(ctx, room.ID, buyer.ID, "   ")
	assert.ErrorIs(t, err, market_errors.ErrInvalidInput)

	_, err = svc.SendRoomMessage(ctx, 777, buyer.ID, "hi")
	assert.ErrorIs(t, err, market_errors.ErrNotFound)

	msg, err := svc.SendRoomMessage(ctx, room.ID, buyer.ID, "hi")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.True(t, msg.IsNew)
}

func TestListRoomMessages_MarksCounterpartRead(t *testing.T) {
	svc, db := newChatService(t)
	ctx := context.Background()
	buyer := testutil.CreateUser(t, db, "buyer")
	seller := testutil.CreateUser(t, db, "seller")
	room, _, err := svc.FindOrCreateRoom(ctx, buyer.ID, seller.ID)
	require.NoError(t, err)

	_, err = svc.SendRoomMessage(ctx, room.ID, buyer.ID, "is it available?")
	require.NoError(t, err)
	_, err = svc.SendRoomMessage(ctx, room.ID, seller.ID, "yes")
	require.NoError(t, err)

	msgs, err := svc.ListRoomMessages(ctx, room.ID, seller.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "is it available?", msgs[0].ChatMsg)
	assert.Equal(t, "yes", msgs[1].ChatMsg)
	assert.True(t, msgs[0].IsNew, "returned as it was before the read")

	var stored []chat.Message
	require.NoError(t, db.Where("room_id = ?", room.ID).Order("id ASC").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.False(t, stored[0].IsNew, "buyer's message read by seller")
	assert.True(t, stored[1].IsNew, "seller's own message untouched")

	_, err = svc.ListRoomMessages(ctx, room.ID, 31337)
	assert.ErrorIs(t, err, market_errors.ErrForbidden)
}
