package settings

// DB config keys and defaults for settings.
const (
	// ReversalWindowHoursKey controls how long a purchase stays reversible.
	ReversalWindowHoursKey = "REVERSAL_WINDOW_HOURS"
	// CardValidityYearsKey controls how many years after creation a card expires.
	CardValidityYearsKey = "CARD_VALIDITY_YEARS"
	// DefaultReversalWindowHours is the fallback reversal window (hours).
	DefaultReversalWindowHours = 24
	// DefaultCardValidityYears is the fallback card validity (years).
	DefaultCardValidityYears = 3
)
