package tui

import "github.com/rs/zerolog"

// Theme holds the prefixes the session applies when printing messages.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme returns the prefixes used when none are configured.
func DefaultTheme() Theme {
	return Theme{InfoPrefix: "", ErrorPrefix: "✗ ", SuccessPrefix: "✓ "}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger routes diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithTitle prints title before the first prompt.
func WithTitle(title string) Option {
	return func(s *Session) {
		s.title = title
	}
}
