package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72
	maxTitleLen    = 200
	maxEmailLen    = 255
	maxPhoneLen    = 32
	maxFullNameLen = 255
	maxCategoryLen = 100
	maxListLimit   = 200
	defaultLimit   = 50
)

var validate = validator.New()

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen {
		return invalid("username must be at least %d characters", minUsernameLen)
	}
	if n > maxUsernameLen {
		return invalid("username must be at most %d characters", maxUsernameLen)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return invalid("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return invalid("password must be at most %d bytes", maxPasswordLen)
	}
	return nil
}

func validateEmail(email *string) error {
	if email == nil || *email == "" {
		return nil
	}
	if utf8.RuneCountInString(*email) > maxEmailLen {
		return invalid("email must be at most %d characters", maxEmailLen)
	}
	if err := validate.Var(*email, "email"); err != nil {
		return invalid("email must be a valid email")
	}
	return nil
}

// validateMaxLen checks an optional attribute against its column width.
func validateMaxLen(field string, value *string, limit int) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > limit {
		return invalid("%s must be at most %d characters", field, limit)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return invalid("title must be at most %d characters", maxTitleLen)
	}
	return nil
}

// blankToNil turns a pointer to an empty or whitespace-only string into nil so
// optional unique columns never store "".
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func clampPage(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 0 || limit > maxListLimit {
		return 0, 0, invalid("limit must be between 1 and %d", maxListLimit)
	}
	if offset < 0 {
		return 0, 0, invalid("offset must not be negative")
	}
	return limit, offset, nil
}

func normalizeSort(sortBy, order string, allowed []string, fallback string) (string, string, error) {
	if sortBy == "" {
		sortBy = fallback
	}
	ok := false
	for _, a := range allowed {
		if a == sortBy {
			ok = true
			break
		}
	}
	if !ok {
		return "", "", invalid("sort must be one of: %s", strings.Join(allowed, ", "))
	}

	switch strings.ToLower(order) {
	case "", "desc":
		order = "desc"
	case "asc":
		order = "asc"
	default:
		return "", "", invalid("order must be asc or desc")
	}
	return sortBy, order, nil
}
