package models

import (
	"math"
	"time"
)

const dayMillis = 24 * 60 * 60 * 1000

// Subscription - подписка клиента в том виде, как ее показывает страница клиента
type Subscription struct {
	Start         string
	End           string
	DaysRemaining int
}

// DaysRemaining = max(0, ceil((end-now)/1 день)).
// Без даты начала или конца возвращает 0.
func DaysRemaining(start, end *time.Time, now time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	ms := float64(end.Sub(now).Milliseconds())
	days := math.Ceil(ms / dayMillis)
	if days < 0 {
		return 0
	}
	return int(days)
}

// NewSubscription собирает view-model подписки
func NewSubscription(start, end *time.Time, now time.Time) Subscription {
	sub := Subscription{
		Start:         Placeholder,
		End:           Placeholder,
		DaysRemaining: DaysRemaining(start, end, now),
	}
	if start != nil {
		sub.Start = FormatDate(*start)
	}
	if end != nil {
		sub.End = FormatDate(*end)
	}
	return sub
}
