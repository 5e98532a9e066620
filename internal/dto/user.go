package dto

// UserRecord - пользователь в ответах admin/users
type UserRecord struct {
	ID          string     `json:"_id"`
	FirstName   string     `json:"FirstName"`
	LastName    string     `json:"LastName"`
	Email       string     `json:"Email"`
	PhoneNumber string     `json:"PhoneNumber"`
	PlanName    string     `json:"plan_name"`
	UpdatedAt   string     `json:"updatedAt"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	IsActive    FlexString `json:"isActive"`
}

// UserListResponse - GET admin/users
type UserListResponse struct {
	Envelope
	Users []UserRecord `json:"users"`
}

// UserDetailResponse - GET admin/users/:id
type UserDetailResponse struct {
	Envelope
	User           UserRecord         `json:"user"`
	ProjectReports []ProjectReportRef `json:"projectReports"`
}

// ProjectReportRef - отчет в карточке пользователя
type ProjectReportRef struct {
	ID        string `json:"_id"`
	CreatedAt string `json:"createdAt"`
	Type      string `json:"type"`
}
