package cliputil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/user/clipper-cli/pkg/timeutil"
)

// unsafeChars matches characters not safe for filenames: / \ : * ? " < > |
var unsafeChars = regexp.MustCompile(`[/\\:*?"<>|]`)

// SanitizeName removes filesystem-unsafe characters from a user-entered
// output name.
func SanitizeName(name string) string {
	return strings.TrimSpace(unsafeChars.ReplaceAllString(name, ""))
}

// DefaultOutputName returns the default clip name for videoPath and its
// original extension.
// Format: {videoNameNoExt}-({HHMMSS}-to-{HHMMSS})
func DefaultOutputName(videoPath string, start, end float64) (name, ext string) {
	base := filepath.Base(videoPath)
	ext = filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name = fmt.Sprintf("%s-(%s-to-%s)", stem, timeutil.FormatCompact(start), timeutil.FormatCompact(end))
	return name, ext
}

// OutputPath joins dir, name and ext. A trailing ext the user already typed
// is not repeated.
func OutputPath(dir, name, ext string) string {
	name = SanitizeName(name)
	if ext != "" && strings.EqualFold(filepath.Ext(name), ext) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return filepath.Join(dir, name+ext)
}
