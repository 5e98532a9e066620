package models

import (
	"strings"
	"time"
)

// Placeholder показывается вместо пустых значений
const Placeholder = "—"

// Customer - карточка клиента
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	PlanName  string
	LastLogin string
	Status    UserStatus
}

// CustomerRow - строка таблицы клиентов
type CustomerRow struct {
	ID        string
	Name      string
	Email     string
	PlanName  string
	LastLogin string
	Status    UserStatus
}

// CustomerDetail - все, что нужно странице клиента
type CustomerDetail struct {
	Customer     Customer
	Subscription Subscription
	Reports      []ReportRow
}

// ReportsCount - количество отчетов клиента за все время
func (d *CustomerDetail) ReportsCount() int {
	return len(d.Reports)
}

// FullName склеивает имя и фамилию, пустые части отбрасываются
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// OrPlaceholder возвращает value или заглушку
func OrPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// FormatDate - дата в формате "Mon Jan 02 2006"
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 02 2006")
}

// FormatDateTime - дата и время последнего входа
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

// FormatLongDateTime - "January 2, 2006 at 03:04 PM"
func FormatLongDateTime(t time.Time) string {
	return t.Format("January 2, 2006") + " at " + t.Format("03:04 PM")
}
