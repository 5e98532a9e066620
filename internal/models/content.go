package models

import "time"

// CMSContent - юридические тексты и обучающее видео
type CMSContent struct {
	Terms   string
	Privacy string
	Video   TutorialVideo
}

// TutorialVideo - видео, которое уже на сервере, и/или выбранный, но не загруженный файл
type TutorialVideo struct {
	Title     string
	Published bool
	StreamURL string
	Staged    *StagedVideo
}

// StagedVideo - файл, выбранный администратором и ожидающий загрузки в API
type StagedVideo struct {
	Key         string
	FileName    string
	ContentType string
	Size        int64
	StagedAt    time.Time
}

// HasPreview - есть что показать в плеере
func (v TutorialVideo) HasPreview() bool {
	return v.Staged != nil || v.StreamURL != ""
}

// SourceName - подпись под плеером
func (v TutorialVideo) SourceName() string {
	if v.Staged != nil {
		return v.Staged.FileName
	}
	return "Existing uploaded video"
}
