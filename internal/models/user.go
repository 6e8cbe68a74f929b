package models

import (
	"time"
)

// Starting progression for a freshly created user.
const (
	InitialLevel         = 1
	InitialXPToNextLevel = 100
)

// User represents a Health-O-Mania account.
type User struct {
	ID             string    `bson:"_id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	PhoneNumber    string    `bson:"phone_number" json:"phoneNumber"`
	UserCode       string    `bson:"user_code" json:"userCode"`
	PhotoURL       string    `bson:"photo_url" json:"photoURL"`
	HashedPassword string    `bson:"hashed_password" json:"-"`
	Level          int       `bson:"level" json:"level"`
	XP             int       `bson:"xp" json:"xp"`
	XPToNextLevel  int       `bson:"xp_to_next_level" json:"xpToNextLevel"`
	Friends        []string  `bson:"friends" json:"friends"`
	LastActiveAt   time.Time `bson:"last_active_at" json:"lastActiveAt"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// Progress is the gamification slice of a user.
type Progress struct {
	Level         int `bson:"level" json:"level"`
	XP            int `bson:"xp" json:"xp"`
	XPToNextLevel int `bson:"xp_to_next_level" json:"xpToNextLevel"`
}

func (u *User) Progress() Progress {
	return Progress{Level: u.Level, XP: u.XP, XPToNextLevel: u.XPToNextLevel}
}

// HasFriend reports whether id is in the user's friend set.
func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// PublicUser is what other users get to see.
type PublicUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	UserCode      string `json:"userCode"`
	PhotoURL      string `json:"photoURL"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	XPToNextLevel int    `json:"xpToNextLevel"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		UserCode:      u.UserCode,
		PhotoURL:      u.PhotoURL,
		Level:         u.Level,
		XP:            u.XP,
		XPToNextLevel: u.XPToNextLevel,
	}
}

// ProfileUpdate lists the user-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	PhotoURL *string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.PhotoURL == nil
}

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Name        string `json:"name" validate:"required,max=80"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=32"`
	Password    string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
