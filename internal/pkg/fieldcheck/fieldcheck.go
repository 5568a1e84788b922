// Package fieldcheck holds the pure per-field validators shared by the
// listing, user and notification write paths. Validators take payloads with
// pointer fields: a nil field is absent and skipped (partial-update
// semantics), a present field is always checked. Violations come back in
// declaration order so clients can render them stably.
package fieldcheck

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"unidomus/internal/domain"
)

// FieldError is one violation on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	capRe      = regexp.MustCompile(`^\d{5}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

// ListingPayload is a full or partial listing write.
type ListingPayload struct {
	Street       *string
	City         *string
	CAP          *string
	HouseNum     *string
	Province     *string
	Country      *string
	Photos       *[]string
	TenantIDs    *[]int64
	Description  *string
	Price        *int
	FloorArea    *int
	Availability *string
}

// Listing validates a listing payload. Reference existence (publisher,
// tenants) is checked by the service against the store, not here.
func Listing(p ListingPayload) []FieldError {
	var errs []FieldError

	if p.Street != nil && strings.TrimSpace(*p.Street) == "" {
		errs = append(errs, FieldError{"street", "street must not be empty"})
	}
	if p.City != nil && strings.TrimSpace(*p.City) == "" {
		errs = append(errs, FieldError{"city", "city must not be empty"})
	}
	if p.CAP != nil && !capRe.MatchString(*p.CAP) {
		errs = append(errs, FieldError{"cap", "cap must be a 5-digit postal code"})
	}
	if p.HouseNum != nil && !containsDigit(*p.HouseNum) {
		errs = append(errs, FieldError{"houseNum", "houseNum must contain a digit"})
	}
	if p.Province != nil && len(*p.Province) != 2 {
		errs = append(errs, FieldError{"province", "province must be exactly 2 characters"})
	}
	if p.Country != nil && strings.TrimSpace(*p.Country) == "" {
		errs = append(errs, FieldError{"country", "country must not be empty"})
	}
	if p.Photos != nil {
		n := len(*p.Photos)
		if n < domain.MinListingPhotos || n > domain.MaxListingPhotos {
			errs = append(errs, FieldError{"photos", fmt.Sprintf("photos must contain between %d and %d entries", domain.MinListingPhotos, domain.MaxListingPhotos)})
		}
	}
	if p.TenantIDs != nil && len(*p.TenantIDs) > domain.MaxListingTenants {
		errs = append(errs, FieldError{"tenantsID", fmt.Sprintf("tenantsID must contain at most %d entries", domain.MaxListingTenants)})
	}
	if p.Description != nil && len(*p.Description) > 1000 {
		errs = append(errs, FieldError{"description", "description must be at most 1000 characters"})
	}
	if p.Price != nil && (*p.Price < 10 || *p.Price > 10000) {
		errs = append(errs, FieldError{"price", "price must be between 10 and 10000"})
	}
	if p.FloorArea != nil && (*p.FloorArea < 1 || *p.FloorArea > 10000) {
		errs = append(errs, FieldError{"floorArea", "floorArea must be between 1 and 10000"})
	}
	if p.Availability != nil && len(*p.Availability) > 250 {
		errs = append(errs, FieldError{"availability", "availability must be at most 250 characters"})
	}

	return errs
}

// UserPayload is a full or partial user write.
type UserPayload struct {
	Email           *string
	Username        *string
	Password        *string
	Name            *string
	Surname         *string
	Habits          *[]string
	Hobbies         *[]string
	ProfilePictures *[]string
}

// User validates a user payload.
func User(p UserPayload) []FieldError {
	var errs []FieldError

	if p.Email != nil && !emailRe.MatchString(*p.Email) {
		errs = append(errs, FieldError{"email", "email must be a valid address"})
	}
	if p.Username != nil && !usernameRe.MatchString(*p.Username) {
		errs = append(errs, FieldError{"username", "username must be 3-20 letters, digits or underscores"})
	}
	if p.Password != nil {
		errs = append(errs, password(*p.Password)...)
	}
	if p.Name != nil && len(*p.Name) > 50 {
		errs = append(errs, FieldError{"name", "name must be at most 50 characters"})
	}
	if p.Surname != nil && len(*p.Surname) > 50 {
		errs = append(errs, FieldError{"surname", "surname must be at most 50 characters"})
	}
	if p.Habits != nil && len(*p.Habits) > 20 {
		errs = append(errs, FieldError{"habits", "habits must contain at most 20 entries"})
	}
	if p.Hobbies != nil && len(*p.Hobbies) > 20 {
		errs = append(errs, FieldError{"hobbies", "hobbies must contain at most 20 entries"})
	}
	if p.ProfilePictures != nil && len(*p.ProfilePictures) > domain.MaxProfilePictures {
		errs = append(errs, FieldError{"proPic", fmt.Sprintf("proPic must contain at most %d entries", domain.MaxProfilePictures)})
	}

	return errs
}

func password(pw string) []FieldError {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if len(pw) < 8 || !hasUpper || !hasLower || !hasDigit {
		return []FieldError{{"password", "password must be at least 8 characters with upper, lower and digit"}}
	}
	return nil
}

// NotificationMessage validates a notification message body.
func NotificationMessage(msg string) []FieldError {
	if len(msg) < domain.MinNotificationMessage || len(msg) > domain.MaxNotificationMessage {
		return []FieldError{{"message", fmt.Sprintf("message must be between %d and %d characters", domain.MinNotificationMessage, domain.MaxNotificationMessage)}}
	}
	return nil
}

// ReportDescription validates a report description.
func ReportDescription(desc string) []FieldError {
	if len(desc) > domain.MaxReportDescription {
		return []FieldError{{"description", fmt.Sprintf("description must be at most %d characters", domain.MaxReportDescription)}}
	}
	return nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
