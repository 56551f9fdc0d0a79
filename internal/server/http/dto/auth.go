package dto

// LoginRequest describes the mini-app identity payload. Password is
// optional and only checked for accounts that have one stored.
type LoginRequest struct {
	TgID     int64  `json:"tg_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	TgID     int64   `json:"tgId"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	Email    string  `json:"email,omitempty"`
}

// LoginResponse carries the session token after login.
type LoginResponse struct {
	Status string       `json:"status"`
	Token  string       `json:"token"`
	User   UserResponse `json:"user"`
}
