package models

import "time"

// User mirrors a row of the users table. The row is owned by the hosted
// identity/database service: this server reads it and updates the profile
// fields, but never creates or deletes users.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Picture      string    `json:"picture,omitempty"`
	Skills       []string  `json:"skills"`
	Location     string    `json:"location"`
	Availability string    `json:"availability"`
	Verified     bool      `json:"verified"`
	TimeCredits  int       `json:"time_credits"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileUpdate carries the subset of user fields a client may change.
// A nil pointer (or nil Skills) means "leave unchanged".
type ProfileUpdate struct {
	Name         *string  `json:"name"`
	Skills       []string `json:"skills"`
	Location     *string  `json:"location"`
	Availability *string  `json:"availability"`
}

// Empty reports whether the update would touch no fields.
func (u *ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Skills == nil && u.Location == nil && u.Availability == nil
}
