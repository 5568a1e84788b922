package match

import "unidomus/internal/domain"

type CreateRequest struct {
	ReceiverID int64            `json:"receiverID" binding:"required"`
	MatchType  domain.MatchType `json:"matchType" binding:"required"`
}

type UpdateStatusRequest struct {
	Status domain.MatchStatus `json:"matchStatus" binding:"required"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}
