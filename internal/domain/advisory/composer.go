package advisory

import "strings"

const (
	// Separator joins advisory messages into a single speech bubble.
	Separator = " | "
	// NoActionNeeded is shown when the pet is already dressed for the air.
	NoActionNeeded = "no action needed"
	// LoadingMessage is shown while no reading is available yet.
	LoadingMessage = "Loading AQI..."
)

const (
	maskNeeded       = "I need my mask on right now"
	maskNotNeeded    = "A mask isn't necessary right now"
	reduceNeeded     = "I should take it easy and reduce my activity now"
	reduceNotNeeded  = "I don't need to reduce my activity right now"
	reduceNotEnough  = "Even with reduced activity, I still feel the effects of air pollution"
	indoorsNeeded    = "I should stay indoors right now"
	outdoorsSafe     = "It is safe to leave the house!"
	outdoorsWithCare = "It is safe to leave the house, with proper precautions"
)

// Compose compares the protection the pet is drawn with against what the
// live AQI calls for and returns one message per differing precaution, in
// mask, reduced activity, stay indoors order.
func Compose(displayed PetState, liveAQI int, susceptible bool) []string {
	return compare(RequirementOf(displayed), Classify(liveAQI, susceptible))
}

func compare(depicted, required Requirement) []string {
	messages := make([]string, 0, 3)

	switch {
	case required.Mask && !depicted.Mask:
		messages = append(messages, maskNeeded)
	case !required.Mask && depicted.Mask:
		messages = append(messages, maskNotNeeded)
	}

	switch {
	case required.ReducedActivity && !depicted.ReducedActivity:
		messages = append(messages, reduceNeeded)
	case !required.ReducedActivity && depicted.ReducedActivity:
		if required.StayIndoors {
			messages = append(messages, reduceNotEnough)
		} else {
			messages = append(messages, reduceNotNeeded)
		}
	}

	switch {
	case required.StayIndoors && !depicted.StayIndoors:
		messages = append(messages, indoorsNeeded)
	case !required.StayIndoors && depicted.StayIndoors:
		if required.Mask || required.ReducedActivity {
			messages = append(messages, outdoorsWithCare)
		} else {
			messages = append(messages, outdoorsSafe)
		}
	}

	return messages
}

// Render joins messages into the speech bubble text.
func Render(messages []string) string {
	if len(messages) == 0 {
		return NoActionNeeded
	}
	return strings.Join(messages, Separator)
}
