package user

import (
	"time"

	"unidomus/internal/domain"
)

type UpdateProfileRequest struct {
	Name            *string        `json:"name"`
	Surname         *string        `json:"surname"`
	BirthDate       *time.Time     `json:"birthDate"`
	Gender          *domain.Gender `json:"gender"`
	Habits          *[]string      `json:"habits"`
	Hobbies         *[]string      `json:"hobbies"`
	ProfilePictures *[]string      `json:"proPic"`
}

// PublicProfile is the projection served to other users.
type PublicProfile struct {
	ID              int64         `json:"id"`
	Username        string        `json:"username"`
	Name            string        `json:"name,omitempty"`
	Surname         string        `json:"surname,omitempty"`
	BirthDate       *time.Time    `json:"birthDate,omitempty"`
	Gender          domain.Gender `json:"gender,omitempty"`
	Habits          []string      `json:"habits"`
	Hobbies         []string      `json:"hobbies"`
	ProfilePictures []string      `json:"proPic"`
	ListingID       *int64        `json:"listingID,omitempty"`
}

func toPublicProfile(u *domain.User) PublicProfile {
	return PublicProfile{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		Surname:         u.Surname,
		BirthDate:       u.BirthDate,
		Gender:          u.Gender,
		Habits:          u.Habits,
		Hobbies:         u.Hobbies,
		ProfilePictures: u.ProfilePictures,
		ListingID:       u.ListingID,
	}
}
