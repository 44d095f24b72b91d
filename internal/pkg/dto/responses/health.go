package responses

import "time"

type Health struct {
	Success   bool      `json:"success"`
	Status    string    `json:"status"`
	Uptime    float64   `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}
