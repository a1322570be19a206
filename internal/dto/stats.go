package dto

// StatsOverview summarises the active leads
type StatsOverview struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	ByOwner        map[string]int `json:"byOwner"`
	AddedToday     int            `json:"addedToday"`
	AddedThisWeek  int            `json:"addedThisWeek"`
	AddedThisMonth int            `json:"addedThisMonth"`
}

// FunnelStage is one status of the conversion funnel
type FunnelStage struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// TimelinePoint counts leads added and won on one day
type TimelinePoint struct {
	Date  string `json:"date" example:"2024-05-01"`
	Added int    `json:"added"`
	Won   int    `json:"won"`
}

// OwnerPerformance is the pipeline outcome of one owner
type OwnerPerformance struct {
	Total          int `json:"total"`
	Won            int `json:"won"`
	Contacted      int `json:"contacted"`
	Meeting        int `json:"meeting"`
	ConversionRate int `json:"conversionRate"`
}

// GeoStats counts active leads per Brazilian region
type GeoStats struct {
	ByRegion map[string]int `json:"byRegion"`
	Total    int            `json:"total"`
}

// ActivityCounts is the activity of one owner over one period
type ActivityCounts struct {
	Contacted int `json:"contacted"`
	Meetings  int `json:"meetings"`
	Won       int `json:"won"`
}

// ActivityScore weights activity per period
type ActivityScore struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
}

// SalesForceStats is the activity board of one owner
type SalesForceStats struct {
	Today       ActivityCounts `json:"today"`
	Week        ActivityCounts `json:"week"`
	Month       ActivityCounts `json:"month"`
	TotalActive int            `json:"totalActive"`
	Score       ActivityScore  `json:"score"`
}
