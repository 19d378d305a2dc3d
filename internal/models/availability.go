package models

// HourlySlot is one bucket of a day's availability sequence.
type HourlySlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// StationStats is the station-admin dashboard aggregate.
type StationStats struct {
	TotalSlots       int64   `json:"total_slots"`
	SlotsBookedToday int64   `json:"slots_booked_today"`
	RevenueToday     float64 `json:"revenue_today"`
	TotalEarnings    float64 `json:"total_earnings"`
}
