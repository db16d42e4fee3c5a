package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"live-market/internal/domain/chat"
	"live-market/internal/domain/product"
	"live-market/internal/domain/stream"
	"live-market/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Password      string
	TestUserCount int
}

func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Password:      "Test@123!",
		TestUserCount: 4,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Users    []*user.User
	Rooms    []*chat.Room
	Streams  []*stream.Stream
	Products []*product.Product
}

var testUserData = []struct {
	email string
	name  string
}{
	{"alice@test.com", "Alice Johnson"},
	{"bob@test.com", "Bob Smith"},
	{"charlie@test.com", "Charlie Brown"},
	{"diana@test.com", "Diana Prince"},
	{"edward@test.com", "Edward Chen"},
	{"fiona@test.com", "Fiona Green"},
}

// Seed fills a development database with users, a room, a stream and products.
// Running it twice reuses the users it already created.
func Seed(ctx context.Context, db *gorm.DB, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	log.Println("Starting database seeding...")
	result := &SeedResult{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := seedUsers(tx, cfg)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		result.Users = users
		if len(users) < 2 {
			return nil
		}

		seller, buyer := users[0], users[1]

		room := &chat.Room{BuyerID: buyer.ID, SellerID: seller.ID, PairKey: chat.PairKey(buyer.ID, seller.ID)}
		if err := tx.Where("pair_key = ?", room.PairKey).FirstOrCreate(room).Error; err != nil {
			return fmt.Errorf("failed to seed room: %w", err)
		}
		result.Rooms = append(result.Rooms, room)

		greeting := &chat.Message{RoomID: room.ID, UserID: buyer.ID, ChatMsg: "Is this still available?", IsNew: true}
		if err := tx.Create(greeting).Error; err != nil {
			return fmt.Errorf("failed to seed chat message: %w", err)
		}

		st := &stream.Stream{UserID: seller.ID, Name: "Vintage cameras", Price: 120000, Description: "Film cameras from the 80s"}
		if err := tx.Create(st).Error; err != nil {
			return fmt.Errorf("failed to seed stream: %w", err)
		}
		result.Streams = append(result.Streams, st)

		for i, name := range []string{"Canon AE-1", "Nikon FM2", "Olympus OM-1"} {
			p := &product.Product{UserID: seller.ID, Name: name, Price: int64(90000 + i*10000), Description: "Tested and working"}
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", name, err)
			}
			result.Products = append(result.Products, p)
		}

		fav := &product.Favorite{UserID: buyer.ID, ProductID: result.Products[0].ID}
		return tx.Where("user_id = ? AND product_id = ?", fav.UserID, fav.ProductID).FirstOrCreate(fav).Error
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database seeding completed successfully!")
	return result, nil
}

func seedUsers(tx *gorm.DB, cfg *SeedConfig) ([]*user.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	users := make([]*user.User, 0, cfg.TestUserCount)
	for i := 0; i < cfg.TestUserCount && i < len(testUserData); i++ {
		data := testUserData[i]
		email := data.email

		var existing user.User
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			log.Printf("Test user %s already exists, skipping", email)
			users = append(users, &existing)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		u := &user.User{Name: data.name, Email: &email, PasswordHash: string(hashedPassword)}
		if err := tx.Create(u).Error; err != nil {
			return nil, fmt.Errorf("failed to create test user %s: %w", email, err)
		}
		users = append(users, u)
		log.Printf("Test user seeded: %s", email)
	}
	return users, nil
}
