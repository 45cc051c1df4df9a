package auth

// RegisterRequest is the payload of the register service.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse carries the new user's id and token.
type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

// AuthenticateRequest is the payload of the authenticate service.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticateResponse carries the token and display name of a logged-in user.
type AuthenticateResponse struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// VerifyTokenRequest is the payload of the verify-token service.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyTokenResponse reports token validity. Invalid tokens are a normal reply,
// not a transport error.
type VerifyTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID int64  `json:"user_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// IssueTokenRequest is the payload of the issue-token service.
type IssueTokenRequest struct {
	UserID int64 `json:"user_id"`
}

// IssueTokenResponse carries a freshly signed token.
type IssueTokenResponse struct {
	Token string `json:"token"`
}
