package dto

// ProjectOwner - populated userId проекта
type ProjectOwner struct {
	ID        string `json:"_id"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
}

// Project - проект (отчет) пользователя
type Project struct {
	ID        string        `json:"_id"`
	Type      string        `json:"type"`
	CreatedAt string        `json:"createdAt"`
	UserID    *ProjectOwner `json:"userId"`
}

// ProjectListResponse - GET admin/projects
type ProjectListResponse struct {
	Envelope
	Projects []Project `json:"projects"`
}

// ProjectDetailResponse - GET admin/projects/:id
type ProjectDetailResponse struct {
	Envelope
	Project Project `json:"project"`
}
