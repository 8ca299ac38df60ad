package domain

import "time"

// Activity is one entry from the provider's activities listing endpoint.
// Field tags follow the Strava API response shape.
type Activity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SportType   string    `json:"sport_type"`
	ElapsedTime int64     `json:"elapsed_time"` // seconds
	Distance    float64   `json:"distance"`     // meters
	StartDate   time.Time `json:"start_date_local"`
}
