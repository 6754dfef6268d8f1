// Package schema has models, constants and palettes for all parts of trendline.
package schema

import "time"

// MonthBucket is one calendar-month slot of a display window.
type MonthBucket struct {
	Year  int    `json:"year"`
	Month int    `json:"month"` // 1..12
	Label string `json:"label"` // 2006-01
}

// Matches reports whether the bucket covers the given calendar month.
func (b MonthBucket) Matches(year, month int) bool {
	return b.Year == year && b.Month == month
}

// DatedRecord is one sparse transactional record attributed to a calendar month.
// Multiple records that share a month and group are summed by the bucketer.
type DatedRecord struct {
	Year      int                `json:"year"`
	Month     int                `json:"month"`
	Value     float64            `json:"value"`
	GroupKey  string             `json:"group_key"`
	GroupName string             `json:"group_name"`
	Aux       map[string]float64 `json:"aux,omitempty"` // Optional auxiliary numeric fields
}

// Event is a dated annotation (for example a price change) attached to an entity.
type Event struct {
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	EntityKey string    `json:"entity_key"`
}

// Group is a named category with a dense per-month series.
// Total always equals the sum of MonthlySeries.
type Group struct {
	Key           string             `json:"key"`
	DisplayName   string             `json:"display_name"`
	MonthlySeries []float64          `json:"monthly_series"`
	Total         float64            `json:"total"`
	Aux           map[string]float64 `json:"aux,omitempty"` // Averaged auxiliary fields
}

// RankedGroup is a Group decorated with its display rank and color.
type RankedGroup struct {
	Group
	Rank    int    `json:"rank"`
	Color   string `json:"color"`
	IsOther bool   `json:"is_other"`
}
