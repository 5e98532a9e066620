package models

import "strings"

// PaymentSettings - страница настроек платежного шлюза
type PaymentSettings struct {
	Mode           PaymentMode
	PublishableKey string
	SecretKey      string
	WebhookURL     string
	Configured     bool
}

// Sandbox - шлюз в тестовом режиме
func (s PaymentSettings) Sandbox() bool {
	return s.Mode == PaymentModeSandbox
}

// ModeFromKey определяет режим по префиксу ключа (sk_test_/pk_test_ = sandbox)
func ModeFromKey(key string) PaymentMode {
	if strings.Contains(key, "_live_") {
		return PaymentModeLive
	}
	return PaymentModeSandbox
}

// MaskKey оставляет префикс и последние 4 символа
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 12 {
		return strings.Repeat("•", len(key))
	}
	prefix := key[:8]
	suffix := key[len(key)-4:]
	return prefix + strings.Repeat("•", len(key)-12) + suffix
}
