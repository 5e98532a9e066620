package dto

// PlanPrice - тариф плана
type PlanPrice struct {
	DurationMonths int      `json:"durationMonths"`
	Price          float64  `json:"price"`
	ActualPrice    *float64 `json:"actualPrice,omitempty"`
	Label          string   `json:"label,omitempty"`
}

// PlanRecord - элемент ответа GET api/admin/get-all (ответ - голый массив)
type PlanRecord struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Currency    string      `json:"currency"`
	Description string      `json:"description"`
	IsActive    *bool       `json:"isActive"`
	Features    []string    `json:"features"`
	Prices      []PlanPrice `json:"prices"`
}

// PlanPayload - тело PUT api/admin/edit/:planId
type PlanPayload struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Currency    string      `json:"currency"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	Features    []string    `json:"features"`
	Prices      []PlanPrice `json:"prices"`
}
