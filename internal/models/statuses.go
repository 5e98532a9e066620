package models

type UserStatus string
type ReportType string
type PlanType string
type PaymentMode string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"

	ReportTypePurchase ReportType = "purchase"
	ReportTypeDraft    ReportType = "draft"
	ReportTypeDeleted  ReportType = "deleted"

	PlanTypeBasic   PlanType = "basic"
	PlanTypePremium PlanType = "premium"

	PaymentModeSandbox PaymentMode = "sandbox"
	PaymentModeLive    PaymentMode = "live"
)

// StatusUI - то, как статус выглядит на странице
type StatusUI struct {
	Label string
	Pill  string
}

// ReportTypeUI - представление типа отчета.
// ListLabel используется в списках, DetailLabel на странице отчета.
type ReportTypeUI struct {
	ListLabel   string
	DetailLabel string
	Pill        string
	CanDownload bool
}

var userStatusUI = map[UserStatus]StatusUI{
	UserStatusActive: {
		Label: "User Active",
		Pill:  "pill-green",
	},
	UserStatusBlocked: {
		Label: "User Blocked",
		Pill:  "pill-red",
	},
}

var reportTypeUI = map[ReportType]ReportTypeUI{
	ReportTypePurchase: {
		ListLabel:   "New",
		DetailLabel: "Completed",
		Pill:        "pill-green",
		CanDownload: true,
	},
	ReportTypeDraft: {
		ListLabel:   "Edited",
		DetailLabel: "Edited",
		Pill:        "pill-yellow",
	},
	ReportTypeDeleted: {
		ListLabel:   "Deleted",
		DetailLabel: "Deleted",
		Pill:        "pill-gray",
	},
}

// UserStatusFromFlag переводит поле isActive из API в статус.
// Все, что не "blocked", считается активным.
func UserStatusFromFlag(isActive string) UserStatus {
	if UserStatus(isActive) == UserStatusBlocked {
		return UserStatusBlocked
	}
	return UserStatusActive
}

// UI возвращает label и стиль статуса пользователя
func (s UserStatus) UI() StatusUI {
	if ui, ok := userStatusUI[s]; ok {
		return ui
	}
	return userStatusUI[UserStatusActive]
}

// Blocked - true для заблокированного пользователя
func (s UserStatus) Blocked() bool {
	return s == UserStatusBlocked
}

// Toggled возвращает противоположный статус
func (s UserStatus) Toggled() UserStatus {
	if s.Blocked() {
		return UserStatusActive
	}
	return UserStatusBlocked
}

// UI возвращает представление типа отчета, неизвестные типы выглядят как draft
func (t ReportType) UI() ReportTypeUI {
	if ui, ok := reportTypeUI[t]; ok {
		return ui
	}
	return reportTypeUI[ReportTypeDraft]
}

// Valid проверяет, что тип плана известен
func (p PlanType) Valid() bool {
	return p == PlanTypeBasic || p == PlanTypePremium
}
