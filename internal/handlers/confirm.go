package handlers

// confirmView - страница подтверждения необратимого действия.
// Форма отправляет Fields и confirm=yes на Action.
type confirmView struct {
	Title        string
	Message      string
	Action       string
	Fields       map[string]string
	ConfirmLabel string
	CancelURL    string
	Danger       bool
}
