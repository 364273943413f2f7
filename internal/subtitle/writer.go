// Package subtitle writes extracted timecodes as SubRip (.srt) files so
// the recording date/time can be overlaid during playback.
package subtitle

import (
	"fmt"
	"os"
	"strings"

	"github.com/zsiec/dvscan/internal/dv"
)

// SidecarPath derives the subtitle path for a video file, replacing a
// .avi extension (any case) or appending .srt otherwise.
func SidecarPath(videoPath string) string {
	lower := strings.ToLower(videoPath)
	if strings.HasSuffix(lower, ".avi") {
		return videoPath[:len(videoPath)-4] + ".srt"
	}
	return videoPath + ".srt"
}

// WriteFile writes one subtitle entry per timecode, each displayed for
// one second starting at its position in the list.
func WriteFile(path string, times []dv.RecordedTime) error {
	var b strings.Builder
	for i, t := range times {
		b.WriteString(fmt.Sprintf("%d\n", i+1))
		b.WriteString(fmt.Sprintf("%s --> %s\n", Timestamp(i), Timestamp(i+1)))
		b.WriteString(fmt.Sprintf("%02d/%02d/%d\n", t.Day, t.Month, t.Year))
		b.WriteString(fmt.Sprintf("%02d:%02d:%02d\n", t.Hour, t.Minute, t.Second))
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// Timestamp formats whole seconds in the SubRip HH:MM:SS,mmm form.
func Timestamp(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d,000", seconds/3600, (seconds%3600)/60, seconds%60)
}
