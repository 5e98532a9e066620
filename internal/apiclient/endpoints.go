package apiclient

import "net/url"

// Пути удаленного API относительно BaseURL
const (
	PathLogin       = "admin/login"
	PathContent     = "api/content/get"
	PathTerms       = "api/content/terms-and-conditions"
	PathPrivacy     = "api/content/privacy-policy"
	PathUploadVideo = "api/content/upload-video"
	PathUsers       = "admin/users"
	PathProjects    = "admin/projects"
	PathPlans       = "api/admin/get-all"
	PathTaxConfig   = "admin/tax/config"
)

func UserPath(id string) string {
	return PathUsers + "/" + url.PathEscape(id)
}

// BlockUserPath - PUT переключает блокировку (block <-> unblock)
func BlockUserPath(id string) string {
	return PathUsers + "/block/" + url.PathEscape(id)
}

func ProjectPath(id string) string {
	return PathProjects + "/" + url.PathEscape(id)
}

func GenerateReportPath(id string) string {
	return PathProjects + "/generate-report/" + url.PathEscape(id)
}

func SoftDeleteProjectPath(id string) string {
	return "api/project/soft-delete/" + url.PathEscape(id)
}

func EditPlanPath(planID string) string {
	return "api/admin/edit/" + url.PathEscape(planID)
}
