package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ENGAGEMENT STATS MODELS
// =====================================================

// EventType identifies which counter an engagement event touches
type EventType string

const (
	EventView  EventType = "view"
	EventShare EventType = "share"
)

// DailyStat is one day's aggregated engagement for a post. Rows are
// upserted atomically, keyed on (post_id, stat_date).
type DailyStat struct {
	PostID   uuid.UUID `json:"post_id" db:"post_id"`
	StatDate time.Time `json:"stat_date" db:"stat_date"`
	Views    int64     `json:"views" db:"views"`
	Shares   int64     `json:"shares" db:"shares"`
}

// DailyPoint is one day of a tenant-wide series, summed across posts
type DailyPoint struct {
	Date   time.Time `json:"date"`
	Views  int64     `json:"views"`
	Shares int64     `json:"shares"`
}

// TenantStats is the author dashboard aggregate
type TenantStats struct {
	TotalViews     int64        `json:"total_views"`
	TotalShares    int64        `json:"total_shares"`
	PublishedPosts int64        `json:"published_posts"`
	Daily          []DailyPoint `json:"daily"`
}
