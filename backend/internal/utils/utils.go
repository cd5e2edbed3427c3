package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivals-dev/rivals/shared/config"
	"github.com/rivals-dev/rivals/shared/errors"
)

// ContentValidator enforces the configured length limits. Blank means empty:
// whitespace-only input is rejected where a value is required.
type ContentValidator struct {
	maxTitle int
	maxBody  int
}

func New(cfg config.Content) *ContentValidator {
	return &ContentValidator{maxTitle: cfg.MaxTitleLength, maxBody: cfg.MaxBodyLength}
}

func (v *ContentValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", errors.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(title) > v.maxTitle {
		return fmt.Errorf("%w: title is longer than %d characters", errors.ErrInvalidArgument, v.maxTitle)
	}
	return nil
}

func (v *ContentValidator) Body(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: body is required", errors.ErrInvalidArgument)
	}
	return v.OptionalBody(body)
}

// OptionalBody accepts an empty body and only checks the length limit.
func (v *ContentValidator) OptionalBody(body string) error {
	if utf8.RuneCountInString(body) > v.maxBody {
		return fmt.Errorf("%w: body is longer than %d characters", errors.ErrInvalidArgument, v.maxBody)
	}
	return nil
}

// AuthorId accepts an optional author id of reasonable size.
func (v *ContentValidator) AuthorId(id string) error {
	if utf8.RuneCountInString(id) > maxAuthorIdLength {
		return fmt.Errorf("%w: authorId is longer than %d characters", errors.ErrInvalidArgument, maxAuthorIdLength)
	}
	return nil
}

const maxAuthorIdLength = 128
