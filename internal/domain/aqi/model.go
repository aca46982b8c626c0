package aqi

import "time"

// Request captures the payload accepted by the aggregation endpoint.
type Request struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Date      string   `json:"date"`
}

// NewRequest builds a request for a known coordinate.
func NewRequest(lat, lon float64, date string) Request {
	return Request{Latitude: &lat, Longitude: &lon, Date: date}
}

// Response is the representative AQI for a coordinate and date.
type Response struct {
	AQI          int         `json:"AQI"`
	Date         string      `json:"date"`
	BoundingBox  BoundingBox `json:"bbox"`
	Observations int         `json:"observations"`
	Source       string      `json:"source"`
	Cached       bool        `json:"cached"`
}

// Observation is a single upstream measurement inside a bounding box.
type Observation struct {
	Station    string
	Latitude   float64
	Longitude  float64
	Parameter  string
	AQI        int
	ObservedAt time.Time
}

// Rating is the reduced value stored in the cache.
type Rating struct {
	AQI          int       `json:"aqi"`
	Observations int       `json:"observations"`
	Source       string    `json:"source"`
	RatedAt      time.Time `json:"ratedAt"`
}

// Config wires runtime knobs for the aggregator.
type Config struct {
	HalfWidth       float64
	UpstreamTimeout time.Duration
	CacheTTL        time.Duration
	Location        *time.Location
}
