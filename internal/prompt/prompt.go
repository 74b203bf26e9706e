// Package prompt abstracts interactive part selection for testing.
package prompt

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/marshab/marskit/internal/catalog"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C.
var ErrCancelled = terminal.InterruptErr

// Prompter abstracts user interaction for testing.
type Prompter interface {
	Select(label string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter with survey/v2.
type SurveyPrompter struct{}

// NewSurveyPrompter returns a survey-based prompter.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

func (p *SurveyPrompter) Select(label string, options []string, defaultValue string) (string, error) {
	var value string
	err := survey.AskOne(&survey.Select{
		Message: label,
		Options: options,
		Default: defaultValue,
	}, &value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// PickPart asks the user to choose one part from the catalog.
func PickPart(p Prompter, cat *catalog.Catalog) (*catalog.Part, error) {
	parts := cat.Parts()
	if len(parts) == 0 {
		return nil, fmt.Errorf("catalog has no parts")
	}

	options := make([]string, 0, len(parts))
	slugByOption := make(map[string]string, len(parts))
	for _, part := range parts {
		label := fmt.Sprintf("%s (%s)", part.Slug, part.Title)
		options = append(options, label)
		slugByOption[label] = part.Slug
	}

	choice, err := p.Select("Pick a part", options, options[0])
	if err != nil {
		return nil, err
	}
	part, ok := cat.BySlug(slugByOption[choice])
	if !ok {
		return nil, fmt.Errorf("unknown part %q", choice)
	}
	return part, nil
}
