package services

import (
	"context"
	"io"
	"strconv"

	"admin_console/internal/apiclient"
	"admin_console/internal/dto"
	"admin_console/internal/models"
	"admin_console/internal/richtext"
	"admin_console/pkg/apperrors"
)

// VideoUpload - видео для загрузки в API
type VideoUpload struct {
	Title       string
	Published   bool
	FileName    string
	ContentType string
	Body        io.Reader
}

type ContentService interface {
	LoadContent(ctx context.Context) (*models.CMSContent, error)
	SaveTerms(ctx context.Context, html string) error
	SavePrivacy(ctx context.Context, html string) error
	UploadVideo(ctx context.Context, video VideoUpload) error
}

type contentService struct {
	api API
}

func NewContentService(api API) ContentService {
	return &contentService{api: api}
}

func (s *contentService) LoadContent(ctx context.Context) (*models.CMSContent, error) {
	var resp dto.ContentResponse
	if err := s.api.GetJSON(ctx, apiclient.PathContent, &resp); err != nil {
		return nil, apperrors.LoadFailure(err, "cms", "Failed to load CMS content.")
	}

	content := &models.CMSContent{
		Terms:   richtext.Normalize(resp.Content.TermsAndConditions),
		Privacy: richtext.Normalize(resp.Content.PrivacyPolicy),
		Video: models.TutorialVideo{
			Title:     resp.Content.TutorialManagement.VideoTitle,
			Published: true,
		},
	}
	if p := resp.Content.TutorialManagement.Published; p != nil {
		content.Video.Published = *p
	}
	if resp.VideoDetails != nil && resp.VideoDetails.StreamURL != "" {
		content.Video.StreamURL = s.api.ResolveURL(resp.VideoDetails.StreamURL)
	}
	return content, nil
}

func (s *contentService) SaveTerms(ctx context.Context, html string) error {
	payload := dto.TermsPayload{TermsAndConditions: richtext.Normalize(html)}
	if err := s.api.PostJSON(ctx, apiclient.PathTerms, payload, nil); err != nil {
		return apperrors.ActionFailure(err, "cms", "Failed to save Terms & Conditions.")
	}
	return nil
}

func (s *contentService) SavePrivacy(ctx context.Context, html string) error {
	payload := dto.PrivacyPayload{PrivacyPolicy: richtext.Normalize(html)}
	if err := s.api.PostJSON(ctx, apiclient.PathPrivacy, payload, nil); err != nil {
		return apperrors.ActionFailure(err, "cms", "Failed to save Privacy Policy.")
	}
	return nil
}

func (s *contentService) UploadVideo(ctx context.Context, video VideoUpload) error {
	if video.Body == nil {
		return apperrors.ErrVideoRequired
	}

	fields := map[string]string{
		"title":     video.Title,
		"published": strconv.FormatBool(video.Published),
	}
	file := apiclient.FilePart{
		Field:       "video",
		FileName:    video.FileName,
		ContentType: video.ContentType,
		Reader:      video.Body,
	}

	if err := s.api.PostMultipart(ctx, apiclient.PathUploadVideo, fields, file, nil); err != nil {
		return apperrors.ActionFailure(err, "cms", "Failed to upload video.")
	}
	return nil
}
