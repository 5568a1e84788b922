package domain

import "time"

type ReportType string

const (
	ReportUser    ReportType = "user"
	ReportListing ReportType = "listing"
	ReportMatch   ReportType = "match"
	ReportMessage ReportType = "message"
)

// ValidReportType reports whether t is one of the defined report types.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportUser, ReportListing, ReportMatch, ReportMessage:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewing ReportStatus = "reviewing"
	ReportResolved  ReportStatus = "resolved"
	// ReportRemoved marks an administratively dismissed report. The reviewer
	// fields are cleared when a report enters this state.
	ReportRemoved ReportStatus = "removed"
)

const MaxReportDescription = 1000

// Report is a moderation complaint. TargetID is resolved against the
// collection named by ReportType; message reports resolve against the match
// that holds the message and carry the message index.
type Report struct {
	ID           int64        `gorm:"column:id;primaryKey" json:"id"`
	ReporterID   int64        `gorm:"column:reporter_id;index" json:"reporterID"`
	ReportType   ReportType   `gorm:"column:report_type" json:"reportType"`
	TargetID     int64        `gorm:"column:target_id;index" json:"targetID"`
	MessageIndex *int         `gorm:"column:message_index" json:"messageIndex,omitempty"`
	Status       ReportStatus `gorm:"column:status;index" json:"status"`
	Description  string       `gorm:"column:description" json:"description,omitempty"`
	ReviewerID   *int64       `gorm:"column:reviewer_id;index" json:"reviewerID,omitempty"`
	ReviewDate   *time.Time   `gorm:"column:review_date" json:"reviewDate,omitempty"`
	ResolvedDate *time.Time   `gorm:"column:resolved_date" json:"resolvedDate,omitempty"`
	CreatedAt    time.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"column:updated_at" json:"updatedAt"`
}

func (Report) TableName() string { return "reports" }
