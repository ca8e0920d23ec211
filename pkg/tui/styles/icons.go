package styles

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconRunning = "▶"
	IconBullet  = "•"
	IconCamera  = "◉"
)

// LogLevelIcon returns the icon for an event log level.
func LogLevelIcon(level string) string {
	switch level {
	case "error":
		return IconError
	case "warn":
		return IconWarning
	case "info":
		return IconInfo
	default:
		return IconBullet
	}
}
