package advisory

// Requirement lists the precautions that are advisable for a given air quality.
type Requirement struct {
	Mask            bool `json:"mask"`
	ReducedActivity bool `json:"reducedActivity"`
	StayIndoors     bool `json:"stayIndoors"`
}

// None reports whether no precaution is required.
func (r Requirement) None() bool {
	return !r.Mask && !r.ReducedActivity && !r.StayIndoors
}

// Category is the AQI band label shown next to the number.
type Category string

const (
	CategoryGood               Category = "good"
	CategoryModerate           Category = "moderate"
	CategoryUnhealthySensitive Category = "unhealthy_sensitive"
	CategoryUnhealthy          Category = "unhealthy"
	CategoryVeryUnhealthy      Category = "very_unhealthy"
	CategoryHazardous          Category = "hazardous"
)

// Request is the payload accepted by the advisory endpoint.
type Request struct {
	State       string `json:"state"`
	AQI         *int   `json:"aqi"`
	Susceptible bool   `json:"susceptible"`
}

// Response is serialized back to API consumers.
type Response struct {
	State       PetState    `json:"state"`
	AQI         int         `json:"aqi"`
	Category    Category    `json:"category"`
	Susceptible bool        `json:"susceptible"`
	Required    Requirement `json:"required"`
	Depicted    Requirement `json:"depicted"`
	Messages    []string    `json:"messages"`
	Text        string      `json:"text"`
}
