package services

import (
	"context"

	"admin_console/internal/apiclient"
	"admin_console/internal/dto"
	"admin_console/internal/models"
	"admin_console/pkg/apperrors"
)

type ReportService interface {
	ListReports(ctx context.Context) ([]models.ReportRow, error)
	GetReport(ctx context.Context, id string) (*models.ReportDetail, error)
	// DownloadReport отдает PDF только для отчетов, которые можно скачать
	DownloadReport(ctx context.Context, id string) (*models.ReportFile, error)
	// DeleteReport - мягкое удаление, отчет остается в системе со статусом deleted
	DeleteReport(ctx context.Context, id string) error
}

type reportService struct {
	api API
}

func NewReportService(api API) ReportService {
	return &reportService{api: api}
}

func (s *reportService) ListReports(ctx context.Context) ([]models.ReportRow, error) {
	var resp dto.ProjectListResponse
	if err := s.api.GetJSON(ctx, apiclient.PathProjects, &resp); err != nil {
		return nil, apperrors.LoadFailure(err, "report", "Failed to load reports.")
	}

	rows := make([]models.ReportRow, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		rows = append(rows, models.ReportRow{
			ID:       p.ID,
			Date:     formatOptional(dto.ParseTime(p.CreatedAt), models.FormatDate),
			Customer: ownerName(p.UserID, models.Placeholder),
			Type:     models.ReportType(p.Type),
		})
	}
	return rows, nil
}

func (s *reportService) GetReport(ctx context.Context, id string) (*models.ReportDetail, error) {
	var resp dto.ProjectDetailResponse
	if err := s.api.GetJSON(ctx, apiclient.ProjectPath(id), &resp); err != nil {
		return nil, apperrors.LoadFailure(err, "report", "Failed to load report details.")
	}

	p := resp.Project
	if p.ID == "" {
		p.ID = id
	}
	return &models.ReportDetail{
		ID:           p.ID,
		CustomerName: ownerName(p.UserID, "N/A"),
		CreatedAt:    formatOptional(dto.ParseTime(p.CreatedAt), models.FormatLongDateTime),
		Type:         models.ReportType(p.Type),
	}, nil
}

func (s *reportService) DownloadReport(ctx context.Context, id string) (*models.ReportFile, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.UI().CanDownload {
		return nil, apperrors.ErrReportNotDownloadable
	}

	blob, err := s.api.GetBlob(ctx, apiclient.GenerateReportPath(id))
	if err != nil {
		return nil, apperrors.ActionFailure(err, "report", "Failed to download report")
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &models.ReportFile{
		Filename:    "report-" + id + ".pdf",
		ContentType: contentType,
		Data:        blob.Data,
	}, nil
}

func (s *reportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.api.PostJSON(ctx, apiclient.SoftDeleteProjectPath(id), struct{}{}, nil); err != nil {
		return apperrors.ActionFailure(err, "report", "Failed to delete report")
	}
	return nil
}

func ownerName(owner *dto.ProjectOwner, fallback string) string {
	if owner == nil {
		return fallback
	}
	return models.OrPlaceholder(models.FullName(owner.FirstName, owner.LastName), fallback)
}
