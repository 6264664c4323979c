package entities

// User is the profile record kept at users/<uid>. Credentials never appear
// here; they live with the identity provider.
type User struct {
	Email             string  `json:"email"`
	Role              string  `json:"role"`
	CreatedAt         float64 `json:"created_at"`
	CreatedAtReadable string  `json:"created_at_readable,omitempty"`
}
