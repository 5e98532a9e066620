package models

// ReportRow - отчет в списке (на странице клиента или в общем списке)
type ReportRow struct {
	ID       string
	Date     string
	Customer string
	Type     ReportType
}

// Label - подпись статуса для списков
func (r ReportRow) Label() string {
	return r.Type.UI().ListLabel
}

// Pill - стиль статуса
func (r ReportRow) Pill() string {
	return r.Type.UI().Pill
}

// ReportDetail - страница отчета
type ReportDetail struct {
	ID           string
	CustomerName string
	CreatedAt    string
	Type         ReportType
}

// UI - представление типа отчета
func (r *ReportDetail) UI() ReportTypeUI {
	return r.Type.UI()
}

// ReportFile - бинарный отчет, полученный от API
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
