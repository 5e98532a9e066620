package apperrors

import (
	"net/http"
)

// UpstreamFailure описывает ошибку удаленного API.
// Реализуется apiclient.Error, здесь только интерфейс, чтобы не тянуть зависимость.
type UpstreamFailure interface {
	error
	StatusCode() int
	ServerMessage() string
}

// LoadFailure - страница не смогла загрузить данные, форма не рендерится.
func LoadFailure(err error, domain, message string) *AppError {
	return Wrap(err, CodeLoadFailed, domain, message, statusFor(err, http.StatusBadGateway))
}

// ActionFailure - мутация не удалась, страница остается в текущем состоянии.
// Сообщение сервера (если есть) передается как есть.
func ActionFailure(err error, domain, fallback string) *AppError {
	message := fallback
	var up UpstreamFailure
	if As(err, &up) && up.ServerMessage() != "" {
		message = up.ServerMessage()
	}
	return Wrap(err, CodeActionFailed, domain, message, statusFor(err, http.StatusBadGateway))
}

// IsUnauthorized - true, если API отверг токен (истек или отозван).
func IsUnauthorized(err error) bool {
	var up UpstreamFailure
	if As(err, &up) {
		return up.StatusCode() == http.StatusUnauthorized
	}
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code == CodeTokenExpired || appErr.Code == CodeUnauthorized
	}
	return false
}

func statusFor(err error, fallback int) int {
	var up UpstreamFailure
	if As(err, &up) && up.StatusCode() == http.StatusNotFound {
		return http.StatusNotFound
	}
	return fallback
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrSessionExpired = New(
	CodeTokenExpired,
	"auth",
	"Your session has expired, please sign in again",
	http.StatusUnauthorized,
)

// --- CMS / tutorial video ---

// ErrNotAVideo - выбранный файл не является видео.
var ErrNotAVideo = New(
	CodeValidationFailed,
	"cms",
	"Only video files are allowed.",
	http.StatusUnsupportedMediaType,
)

// ErrVideoTooLarge - файл больше допустимого размера.
var ErrVideoTooLarge = New(
	CodeLimitExceeded,
	"cms",
	"Maximum file size is 200MB.",
	http.StatusRequestEntityTooLarge,
)

// ErrVideoRequired - попытка сохранить видео без выбранного файла.
var ErrVideoRequired = New(
	CodeValidationFailed,
	"cms",
	"Please upload a video first.",
	http.StatusBadRequest,
)

// --- Reports ---

// ErrReportNotDownloadable - отчет не в статусе purchase.
var ErrReportNotDownloadable = New(
	CodeInvalidOperation,
	"report",
	"This report is not available for download.",
	http.StatusConflict,
)

// --- Settings ---

// ErrGatewayNotConfigured - секретный ключ платежного шлюза не задан.
var ErrGatewayNotConfigured = New(
	CodeInvalidOperation,
	"settings",
	"Payment gateway secret key is not configured",
	http.StatusBadRequest,
)
