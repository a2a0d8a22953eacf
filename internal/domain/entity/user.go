package entity

// User is the signed-in account as reported by /api/user/me.
type User struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"createdAt"`
}
