package httpdto

// RegisterRequest is used for POST /users
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is used for POST /users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	OK        bool        `json:"ok"`
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"`
	User      UserProfile `json:"user"`
}

type ProfileResponse struct {
	OK      bool        `json:"ok"`
	Profile UserProfile `json:"profile"`
}
