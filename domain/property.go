package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyType string

const (
	PG     PropertyType = "pg"
	Hostel PropertyType = "hostel"
	Room   PropertyType = "room"
)

type Property struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	MerchantID   string             `bson:"merchantId" json:"merchantId"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Type         PropertyType       `bson:"type" json:"type"`
	City         string             `bson:"city" json:"city"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Facilities   []string           `bson:"facilities,omitempty" json:"facilities,omitempty"`
	DailyPrice   int                `bson:"dailyPrice,omitempty" json:"dailyPrice,omitempty"`
	MonthlyPrice int                `bson:"monthlyPrice,omitempty" json:"monthlyPrice,omitempty"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	Verified     bool               `bson:"verified" json:"verified"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type PropertyRoom struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	PropertyID      string             `bson:"propertyId" json:"propertyId"`
	Name            string             `bson:"name" json:"name"`
	DailyPrice      int                `bson:"dailyPrice,omitempty" json:"dailyPrice,omitempty"`
	MonthlyPrice    int                `bson:"monthlyPrice" json:"monthlyPrice"`
	Capacity        int                `bson:"capacity" json:"capacity"`
	SecurityDeposit int                `bson:"securityDeposit,omitempty" json:"securityDeposit,omitempty"`
	Available       bool               `bson:"available" json:"available"`
}

// PropertyFilter carries the list-view search predicates: case-insensitive
// city substring, price ceiling for a time frame, property type.
type PropertyFilter struct {
	City      string       `json:"city,omitempty"`
	Type      PropertyType `json:"type,omitempty"`
	MaxPrice  int          `json:"maxPrice,omitempty"`
	TimeFrame TimeFrame    `json:"timeFrame,omitempty"`
}

type Review struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	PropertyID string             `bson:"propertyId" json:"propertyId"`
	UserID     string             `bson:"userId" json:"userId"`
	Rating     int                `bson:"rating" json:"rating" validate:"gte=1,lte=5"`
	Comment    string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type Favorite struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	PropertyID string             `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type Properties []*Property
type PropertyRooms []*PropertyRoom
type Reviews []*Review

func (o *Properties) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Property) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Property) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *PropertyRooms) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *PropertyRoom) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func (o *Reviews) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Review) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Review) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}
