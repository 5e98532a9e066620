package models

// LoginForm - форма входа в консоль
type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// BlockForm - подтверждение блокировки/разблокировки
type BlockForm struct {
	Status  string `form:"status" json:"status" validate:"required,is-user-status"`
	Confirm string `form:"confirm" json:"confirm"`
}

// Confirmed - администратор нажал "да" на странице подтверждения
func (f BlockForm) Confirmed() bool {
	return f.Confirm == "yes"
}

// BlockAction - глагол действия для текущего статуса: "block" или "unblock"
func BlockAction(current UserStatus) string {
	if current.Blocked() {
		return "unblock"
	}
	return "block"
}
