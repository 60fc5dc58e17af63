package model

type RegisterRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        User   `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetMeRequest struct{}

type GetMeResponse User

type GetUserByNicknameRequest struct {
	Nickname string `json:"nickname"`
}

type GetUserByNicknameResponse struct {
	User User `json:"user"`
}
