package tui

type CaptureStartedMsg struct {
	Event CaptureStarted
}

type CaptureLineMsg struct {
	Event CaptureLine
}

type CaptureFinishedMsg struct {
	Event CaptureFinished
}

type GallerySnapshotMsg struct {
	Snapshot GallerySnapshot
}

type ArtifactDeletedMsg struct {
	Event ArtifactDeleted
}

type EventLogAppendMsg struct {
	Entry EventLogEntry
}
