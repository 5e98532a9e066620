package testutil

import (
	"bytes"
	"time"
)

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// MP4Header - минимальный ftyp заголовок, по которому содержимое распознается как video/mp4
var MP4Header = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")

// MP4 - "видео" с заданным хвостом
func MP4(payload string) []byte {
	return append(append([]byte{}, MP4Header...), payload...)
}

// ISO - время в формате, который отдает API
func ISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
