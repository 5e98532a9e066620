package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Envelope - общие поля ответа API
type Envelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// MessageResponse - ответ мутаций, где важно только сообщение
type MessageResponse struct {
	Envelope
}

// FlexString принимает в JSON как строку, так и bool/число
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*f = ""
	case bool:
		*f = FlexString(strconv.FormatBool(v))
	case float64:
		*f = FlexString(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		*f = FlexString(strings.Trim(string(data), `"`))
	}
	return nil
}

// ParseTime разбирает ISO дату API. Пустая или битая строка дает nil.
func ParseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
