package cmd

import (
	"github.com/user/clipper-cli/tui/forms"
)

// prompter asks the user for values. Each method receives the default in
// value and leaves the answer there.
type prompter interface {
	Start(value *string) error
	End(value *string, validate func(string) error) error
	Name(value *string, ext string) error
	ConfirmOverwrite(path string) (bool, error)
}

// huhPrompter shows the prompts as huh forms.
type huhPrompter struct{}

func (huhPrompter) Start(value *string) error {
	return forms.NewStartForm(value).Run()
}

func (huhPrompter) End(value *string, validate func(string) error) error {
	return forms.NewEndForm(value, validate).Run()
}

func (huhPrompter) Name(value *string, ext string) error {
	return forms.NewNameForm(value, ext).Run()
}

func (huhPrompter) ConfirmOverwrite(path string) (bool, error) {
	overwrite := false
	err := forms.NewConfirmOverwriteForm(path, &overwrite).Run()
	return overwrite, err
}
