package domain

import "time"

type MatchType string

const (
	MatchTypeApartment MatchType = "apartment"
	MatchTypeRoommate  MatchType = "roommate"
)

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchDeclined MatchStatus = "declined"
)

// ValidMatchStatus reports whether s is one of the defined status values.
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchPending, MatchAccepted, MatchDeclined:
		return true
	}
	return false
}

// ValidMatchType reports whether t is one of the defined match types.
func ValidMatchType(t MatchType) bool {
	return t == MatchTypeApartment || t == MatchTypeRoommate
}

// Match is a connection request from a requester to a receiver. The document
// persists after the status reaches a terminal value so the chat history stays
// readable.
type Match struct {
	ID               int64       `gorm:"column:id;primaryKey" json:"id"`
	RequesterID      int64       `gorm:"column:requester_id;index" json:"requesterID"`
	ReceiverID       int64       `gorm:"column:receiver_id;index" json:"receiverID"`
	MatchType        MatchType   `gorm:"column:match_type" json:"matchType"`
	Status           MatchStatus `gorm:"column:status" json:"matchStatus"`
	RequestDate      time.Time   `gorm:"column:request_date" json:"requestDate"`
	ConfirmationDate *time.Time  `gorm:"column:confirmation_date" json:"confirmationDate,omitempty"`
	CreatedAt        time.Time   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Match) TableName() string { return "matches" }

// Involves reports whether the user is one of the two match participants.
func (m *Match) Involves(userID int64) bool {
	return m.RequesterID == userID || m.ReceiverID == userID
}

// OtherParticipant returns the participant that is not userID.
func (m *Match) OtherParticipant(userID int64) int64 {
	if m.RequesterID == userID {
		return m.ReceiverID
	}
	return m.RequesterID
}

// MatchMessage is one chat message inside a match. Messages live in their own
// table so a send is a single atomic insert; ordering is (match_id, id).
type MatchMessage struct {
	ID       int64     `gorm:"column:id;primaryKey" json:"id"`
	MatchID  int64     `gorm:"column:match_id;index:idx_match_messages_match" json:"matchID"`
	AuthorID int64     `gorm:"column:author_id" json:"userID"`
	Text     string    `gorm:"column:text" json:"text"`
	SentAt   time.Time `gorm:"column:sent_at" json:"date"`
}

func (MatchMessage) TableName() string { return "match_messages" }
