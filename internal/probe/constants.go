package probe

// HTTP status code constants.
const (
	StatusOK = 200
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Empty-selection probes: a year with no final and an unknown country.
const (
	probeMissingYear    = 1
	probeMissingCountry = "Atlantis"
)
