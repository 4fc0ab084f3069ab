package domain

// Identity is a verified external identity assertion. Subject is the stable
// provider subject claim that registrations are keyed by.
type Identity struct {
	Subject string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
