package dto

// LoginRequest - вход администратора
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse - токен для всех последующих запросов
type LoginResponse struct {
	Envelope
	Token string `json:"token"`
}
