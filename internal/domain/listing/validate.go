// internal/domain/listing/validate.go

package listing

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the longest title accepted at the form boundary
const MaxTitleLength = 200

// FieldErrors maps an input field name to its validation message
type FieldErrors map[string]string

// Error implements the error interface
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+fe[field])
	}
	return "invalid listing input: " + strings.Join(parts, "; ")
}

// Validate applies the form rules that must hold before analysis is invoked.
// It returns nil when the input is complete.
func Validate(in Input) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "Product title is required"
	} else if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		errs["title"] = "Amazon titles should be less than 200 characters"
	}

	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = "Product category is required"
	}

	if strings.TrimSpace(in.BulletPoints) == "" {
		errs["bulletPoints"] = "Bullet points are required"
	}

	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "Product description is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
