package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/akademus/akademus-api/internal/platform/apierr"
)

var validate = validator.New()

const (
	minCourseTitleLength = 3
	maxCourseTitleLength = 100
	maxNameLength        = 50
)

// fieldErrors collects per-field messages and converts to a validation error.
type fieldErrors map[string]string

func (fe fieldErrors) add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return apierr.Validation("validation failed", map[string]string(fe))
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func checkCourseTitle(fe fieldErrors, title string) string {
	title = strings.TrimSpace(title)
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		fe.add("title", "title is required")
	case n < minCourseTitleLength:
		fe.add("title", fmt.Sprintf("title must be at least %d characters long", minCourseTitleLength))
	case n > maxCourseTitleLength:
		fe.add("title", fmt.Sprintf("title must not exceed %d characters", maxCourseTitleLength))
	}
	return title
}

func checkName(fe fieldErrors, field, label, value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		fe.add(field, label+" is required")
	case utf8.RuneCountInString(value) > maxNameLength:
		fe.add(field, fmt.Sprintf("%s must not exceed %d characters", label, maxNameLength))
	}
	return value
}

func checkEmail(fe fieldErrors, email string) string {
	email = normalizeEmail(email)
	if email == "" {
		fe.add("email", "email is required")
		return email
	}
	if err := validate.Var(email, "email"); err != nil {
		fe.add("email", "please provide a valid email address")
	}
	return email
}
