package report

import "unidomus/internal/domain"

type CreateRequest struct {
	ReportType   domain.ReportType `json:"reportType" binding:"required"`
	TargetID     int64             `json:"targetID" binding:"required"`
	Description  string            `json:"description"`
	MessageIndex *int              `json:"messageIndex"`
}
