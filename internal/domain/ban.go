package domain

import "time"

// BanGraceOffset pads time comparisons across the moderation subsystem:
// a temporary ban is only treated as active while its expiry lies more
// than this offset in the future, and verification tokens stay usable for
// the same offset past their nominal expiry. The padding absorbs clock
// skew between clients and the server.
const BanGraceOffset = 2 * time.Hour

// Ban is the moderation sub-record embedded in users and listings. A zero
// Ban means the target was never banned or the ban was lifted; PrevBanNum
// survives lifts as a history counter.
type Ban struct {
	BanPermanently bool       `gorm:"column:ban_permanently" json:"banPermanently"`
	BanTime        *time.Time `gorm:"column:ban_time" json:"banTime,omitempty"`
	BanMsg         string     `gorm:"column:ban_msg" json:"banMsg,omitempty"`
	PrevBanNum     int        `gorm:"column:prev_ban_num" json:"prevBanNum"`
}

// Active reports whether the ban suppresses the target at the given instant.
func (b Ban) Active(now time.Time) bool {
	if b.BanPermanently {
		return true
	}
	if b.BanTime == nil {
		return false
	}
	return b.BanTime.After(now.Add(BanGraceOffset))
}

// Clear lifts the ban, keeping the history counter.
func (b *Ban) Clear() {
	b.BanPermanently = false
	b.BanTime = nil
	b.BanMsg = ""
}
