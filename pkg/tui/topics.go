package tui

const (
	TopicScopegrabEvents = "scopegrab.events"
	TopicUIMessages      = "scopegrab.ui.msgs"
	TopicUIActions       = "scopegrab.ui.actions"
)

const (
	DomainTypeCaptureStarted  = "capture.started"
	DomainTypeCaptureLine     = "capture.line"
	DomainTypeCaptureFinished = "capture.finished"
	DomainTypeGallerySnapshot = "gallery.snapshot"
	DomainTypeArtifactDeleted = "artifact.deleted"
)

const (
	UITypeCaptureRequest = "tui.capture.request"
	UITypeDeleteRequest  = "tui.delete.request"

	UITypeCaptureStarted  = "tui.capture.started"
	UITypeCaptureLine     = "tui.capture.line"
	UITypeCaptureFinished = "tui.capture.finished"
	UITypeGallerySnapshot = "tui.gallery.snapshot"
	UITypeArtifactDeleted = "tui.artifact.deleted"
	UITypeEventAppend     = "tui.event.append"
)
