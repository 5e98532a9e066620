package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// TokenContextKey - ключ, по которому bearer токен API лежит в context запроса
const TokenContextKey = contextKey("api_token")

// SessionKey - ключ сессии в gin.Context
const SessionKey = "session"
