package forms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/clipper-cli/pkg/cliputil"
	"github.com/user/clipper-cli/pkg/timestamp"
)

const timeHelp = "HH:MM:SS, MM:SS or seconds"

// ValidateStart checks a start time entry. The full range is checked once
// the end is known.
func ValidateStart(s string) error {
	if _, err := timestamp.ParseStart(s); err != nil {
		return err
	}
	return nil
}

// EndValidator returns a validator that resolves the end entry against the
// already entered start and the video duration.
func EndValidator(duration float64, start *string) func(string) error {
	return func(s string) error {
		if _, err := timestamp.Resolve(duration, *start, s); err != nil {
			return err
		}
		return nil
	}
}

// ValidateName rejects names that are empty once unsafe characters are
// removed.
func ValidateName(s string) error {
	if cliputil.SanitizeName(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// NewStartForm prompts for the clip start. The value pointer holds the
// default on entry and the answer on submit.
func NewStartForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter starting time").
				Description(timeHelp + ". Prefix with - to count back from the end.").
				Value(value).
				Validate(ValidateStart),
		),
	).WithTheme(Theme())
}

// NewEndForm prompts for the clip end using validate to check the entry.
func NewEndForm(value *string, validate func(string) error) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter ending time").
				Description(timeHelp + ". Prefix with + to count from the start, - to count back from the video end.").
				Value(value).
				Validate(validate),
		),
	).WithTheme(Theme())
}

// NewNameForm prompts for the output name, without extension.
func NewNameForm(value *string, ext string) *huh.Form {
	desc := "Saved next to the original video"
	if ext != "" {
		desc = fmt.Sprintf("The %s extension is added automatically", strings.TrimPrefix(ext, "."))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter recording name").
				Description(desc).
				Value(value).
				Validate(ValidateName),
		),
	).WithTheme(Theme())
}
