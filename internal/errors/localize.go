package errors

import (
	"errors"

	"github.com/louisbranch/dice-engine/internal/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// Localize renders a user-facing message for the error in the given locale.
// It formats the message using the i18n catalog, defaulting to en-US when the
// locale is empty or unsupported. Non-domain errors render as a generic
// message so internal details never leak to clients.
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}

	if locale == "" {
		locale = DefaultLocale
	}
	catalog := i18n.GetCatalog(locale)

	var appErr *Error
	if errors.As(err, &appErr) {
		return catalog.Format(string(appErr.Code), appErr.Metadata)
	}
	return catalog.Format(string(CodeUnknown), nil)
}
