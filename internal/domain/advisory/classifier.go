package advisory

// Classify maps an AQI value and the susceptibility flag to the precautions
// that are currently advisable. Negative values classify like zero.
func Classify(aqi int, susceptible bool) Requirement {
	switch {
	case aqi >= 301:
		return Requirement{Mask: true, StayIndoors: true}
	case aqi >= 201:
		if susceptible {
			return Requirement{Mask: true, StayIndoors: true}
		}
		return Requirement{Mask: true, ReducedActivity: true}
	case aqi >= 151:
		return Requirement{Mask: true, ReducedActivity: true}
	case aqi >= 101:
		return Requirement{Mask: susceptible, ReducedActivity: susceptible}
	case aqi >= 51:
		return Requirement{ReducedActivity: susceptible}
	default:
		return Requirement{}
	}
}

// CategoryFor returns the EPA band an AQI value falls into.
func CategoryFor(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategoryUnhealthySensitive
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}
