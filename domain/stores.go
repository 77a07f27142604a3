package domain

import (
	"context"

	"github.com/gocql/gocql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthStore interface {
	Register(ctx context.Context, credentials *Credentials) error
	GetOneUser(ctx context.Context, email string) (*Credentials, error)
	GetOneUserByID(ctx context.Context, id primitive.ObjectID) *Credentials
	GetAll(ctx context.Context) ([]*Credentials, error)
	UpdateUser(ctx context.Context, credentials *Credentials) error
}

type TokenCache interface {
	PostCacheData(ctx context.Context, key string, value string) error
	GetCachedValue(ctx context.Context, key string) (string, error)
	DelCachedValue(ctx context.Context, key string) error
}

type ProfileStore interface {
	Insert(ctx context.Context, profile *Profile) (*Profile, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	GetAll(ctx context.Context) ([]*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) (*Profile, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PropertyStore interface {
	Insert(ctx context.Context, property *Property) (*Property, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Property, error)
	GetAll(ctx context.Context) (Properties, error)
	GetByMerchant(ctx context.Context, merchantID string) (Properties, error)
	Search(ctx context.Context, filter *PropertyFilter) (Properties, error)
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	InsertRoom(ctx context.Context, room *PropertyRoom) (*PropertyRoom, error)
	GetRoom(ctx context.Context, id primitive.ObjectID) (*PropertyRoom, error)
	GetRooms(ctx context.Context, propertyID string) (PropertyRooms, error)
}

type BookingStore interface {
	Insert(ctx context.Context, booking *Booking) (*Booking, error)
	Get(ctx context.Context, userID string, id gocql.UUID) (*Booking, error)
	GetByUser(ctx context.Context, userID string) (Bookings, error)
	GetByProperty(ctx context.Context, propertyID string) (Bookings, error)
	Cancel(ctx context.Context, userID string, id gocql.UUID) error
}

type ReviewStore interface {
	Insert(ctx context.Context, review *Review) (*Review, error)
	GetByProperty(ctx context.Context, propertyID string) (Reviews, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type FavoriteStore interface {
	Insert(ctx context.Context, favorite *Favorite) (*Favorite, error)
	Delete(ctx context.Context, userID, propertyID string) error
	GetByUser(ctx context.Context, userID string) ([]*Favorite, error)
}

// ScoredProperty is a recommendation result with its descending score.
type ScoredProperty struct {
	PropertyID string  `json:"propertyId"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Score      float64 `json:"score"`
}

type RecommendationStore interface {
	RecordBooking(ctx context.Context, userID, propertyID string) error
	TopProperties(ctx context.Context, limit int) ([]*ScoredProperty, error)
}
