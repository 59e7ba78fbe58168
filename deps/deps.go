package deps

import (
	"fmt"
	"os/exec"
)

const (
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
	MpvInstallURL    = "https://mpv.io/installation/"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	Binary     string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Binary != "" && e.Binary != e.Name {
		return fmt.Sprintf("%s not found (looked for %s). Install from: %s", e.Name, e.Binary, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Binaries names the executables to look for. Empty fields fall back to
// the tool's default name.
type Binaries struct {
	Ffmpeg  string
	Ffprobe string
	Mpv     string
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func check(name, binary, url string) error {
	if _, err := exec.LookPath(binary); err != nil {
		return &DependencyError{Name: name, Binary: binary, InstallURL: url}
	}
	return nil
}

// CheckFfmpeg checks if ffmpeg is installed and available in PATH
func (b Binaries) CheckFfmpeg() error {
	return check("ffmpeg", orDefault(b.Ffmpeg, "ffmpeg"), FfmpegInstallURL)
}

// CheckFfprobe checks for ffprobe, which ships with ffmpeg
func (b Binaries) CheckFfprobe() error {
	return check("ffprobe", orDefault(b.Ffprobe, "ffprobe"), FfmpegInstallURL)
}

// CheckMpv checks if mpv is installed; only needed for --preview
func (b Binaries) CheckMpv() error {
	return check("mpv", orDefault(b.Mpv, "mpv"), MpvInstallURL)
}

// CheckRequired checks the tools every clip needs and returns a slice of
// errors for missing ones
func (b Binaries) CheckRequired() []error {
	var errors []error

	if err := b.CheckFfmpeg(); err != nil {
		errors = append(errors, err)
	}

	if err := b.CheckFfprobe(); err != nil {
		errors = append(errors, err)
	}

	return errors
}
