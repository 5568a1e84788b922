package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

const MaxProfilePictures = 5

// User is a platform account. Accounts created via registration stay inactive
// until the email verification token is confirmed; Google accounts activate
// immediately. Users are never hard-deleted.
type User struct {
	ID              int64      `gorm:"column:id;primaryKey" json:"id"`
	Email           string     `gorm:"column:email;uniqueIndex" json:"email"`
	Username        string     `gorm:"column:username;uniqueIndex" json:"username"`
	PasswordHash    string     `gorm:"column:password_hash" json:"-"`
	GoogleID        string     `gorm:"column:google_id" json:"-"`
	IsAdmin         bool       `gorm:"column:is_admin" json:"isAdmin"`
	Name            string     `gorm:"column:name" json:"name,omitempty"`
	Surname         string     `gorm:"column:surname" json:"surname,omitempty"`
	BirthDate       *time.Time `gorm:"column:birth_date" json:"birthDate,omitempty"`
	Gender          Gender     `gorm:"column:gender" json:"gender,omitempty"`
	Habits          []string   `gorm:"column:habits;serializer:json" json:"habits"`
	Hobbies         []string   `gorm:"column:hobbies;serializer:json" json:"hobbies"`
	ProfilePictures []string   `gorm:"column:profile_pictures;serializer:json" json:"proPic"`
	Active          bool       `gorm:"column:active" json:"active"`
	ListingID       *int64     `gorm:"column:listing_id" json:"listingID,omitempty"`
	Ban             Ban        `gorm:"embedded" json:"ban"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// HasExternalIdentity reports whether the account authenticates via Google
// instead of a local password.
func (u *User) HasExternalIdentity() bool { return u.GoogleID != "" }

// EmailVerificationToken activates a freshly registered account. Expiry
// comparisons use the same grace offset as bans.
type EmailVerificationToken struct {
	Token     string    `gorm:"column:token;primaryKey" json:"token"`
	UserID    int64     `gorm:"column:user_id;index" json:"userID"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expiresAt"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (EmailVerificationToken) TableName() string { return "email_verification_tokens" }

// Expired reports whether the token is no longer usable at the given instant.
func (t *EmailVerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt.Add(BanGraceOffset))
}
