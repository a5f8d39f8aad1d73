package notification

import "time"

// Severity categorizes a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// validSeverities is the set of recognized severities.
var validSeverities = map[Severity]bool{
	SeveritySuccess: true,
	SeverityError:   true,
	SeverityInfo:    true,
}

// IsValidSeverity checks whether a severity is recognized.
func IsValidSeverity(s Severity) bool {
	return validSeverities[s]
}

// Normalize maps unknown severities to SeverityInfo.
func (s Severity) Normalize() Severity {
	if IsValidSeverity(s) {
		return s
	}
	return SeverityInfo
}

// Icon returns the icon classes shown next to the message.
func (s Severity) Icon() string {
	switch s.Normalize() {
	case SeveritySuccess:
		return "fas fa-check-circle"
	case SeverityError:
		return "fas fa-exclamation-circle"
	default:
		return "fas fa-info-circle"
	}
}

// State is a notification's position in its lifecycle.
type State string

const (
	StateVisible State = "visible"
	StateFading  State = "fading"
	StateRemoved State = "removed"
)

// Class names applied to notification markup.
const (
	ClassNotification = "notification"
	ClassContent      = "notification-content"
	ClassMessage      = "notification-message"
	ClassClose        = "notification-close"
	ClassFading       = "fade-out"
)

// Config controls notification timing and placement.
type Config struct {
	// DisplayFor is how long a notification stays before fading on its own.
	DisplayFor time.Duration

	// FadeFor is how long the fading state lasts before removal.
	FadeFor time.Duration

	// Container is the selector notifications are appended to.
	Container string
}

// DefaultConfig returns the standard timings.
func DefaultConfig() Config {
	return Config{
		DisplayFor: 5000 * time.Millisecond,
		FadeFor:    300 * time.Millisecond,
		Container:  "body",
	}
}
