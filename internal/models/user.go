package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeSeeker UserType = "seeker"
	UserTypeWorker UserType = "worker"
)

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `bson:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
}

type Location struct {
	PostalCode   string       `bson:"postal_code" json:"postalCode"`
	Street       string       `bson:"street" json:"street"`
	Number       string       `bson:"number" json:"number"`
	Complement   string       `bson:"complement,omitempty" json:"complement,omitempty"`
	Neighborhood string       `bson:"neighborhood" json:"neighborhood"`
	City         string       `bson:"city" json:"city"`
	State        string       `bson:"state" json:"state"`
	Coordinates  *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty" validate:"omitempty"`
}

// UserBase holds the attributes shared by seekers and workers.
type UserBase struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID       string             `bson:"uid" json:"uid"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photoURL,omitempty"`
	UserType  UserType           `bson:"user_type" json:"userType"`
	Location  *Location          `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type SearchEntry struct {
	Category   Category  `bson:"category" json:"category"`
	PostalCode string    `bson:"postal_code" json:"postalCode"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

type Seeker struct {
	UserBase      `bson:",inline"`
	Favorites     []string      `bson:"favorites" json:"favorites"`
	SearchHistory []SearchEntry `bson:"search_history" json:"searchHistory"`
}

func (s *Seeker) IsSeeker() bool {
	return s != nil && s.UserType == UserTypeSeeker
}

type CreateSeekerInput struct {
	UID      string    `json:"uid" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name" validate:"required"`
	Phone    string    `json:"phone"`
	PhotoURL string    `json:"photoURL"`
	UserType UserType  `json:"userType" validate:"required,eq=seeker"`
	Location *Location `json:"location" validate:"omitempty"`
}

// Normalize trims the identity fields so that whitespace-only input fails
// validation. Emails are stored lower-case.
func (in *CreateSeekerInput) Normalize() {
	in.UID = strings.TrimSpace(in.UID)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
}

// NewSeeker builds a seeker account with an empty favorites set and history.
func NewSeeker(in CreateSeekerInput, now time.Time) *Seeker {
	return &Seeker{
		UserBase: UserBase{
			UID:       in.UID,
			Email:     in.Email,
			Name:      in.Name,
			Phone:     in.Phone,
			PhotoURL:  in.PhotoURL,
			UserType:  UserTypeSeeker,
			Location:  in.Location,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Favorites:     []string{},
		SearchHistory: []SearchEntry{},
	}
}

// UserPatch lists the profile fields a seeker may change. Nil fields are left untouched.
type UserPatch struct {
	Name     *string   `json:"name" validate:"omitempty,min=1"`
	Phone    *string   `json:"phone"`
	PhotoURL *string   `json:"photoURL"`
	Location *Location `json:"location" validate:"omitempty"`
}

func (p *UserPatch) Normalize() {
	if p != nil {
		trimPtr(p.Name)
	}
}

func (p *UserPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Phone == nil && p.PhotoURL == nil && p.Location == nil)
}

// SetFields returns the bson field paths written by the patch.
func (p *UserPatch) SetFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	if p.PhotoURL != nil {
		fields["photo_url"] = *p.PhotoURL
	}
	if p.Location != nil {
		fields["location"] = p.Location
	}
	return fields
}

func (p *UserPatch) ApplyTo(u *UserBase) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.PhotoURL != nil {
		u.PhotoURL = *p.PhotoURL
	}
	if p.Location != nil {
		loc := *p.Location
		u.Location = &loc
	}
}
