package capture

// Outcome is the terminal result of a capture attempt. Exactly one Outcome is
// produced per accepted request, success or failure.
type Outcome struct {
	OK           bool     `json:"ok"`
	ArtifactPath string   `json:"artifact_path,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	// Tail holds the last few output lines of the grabber when the attempt
	// failed, for diagnostics. Empty when the process never produced output.
	Tail []string `json:"tail,omitempty"`
}

func success(path string) Outcome {
	return Outcome{OK: true, ArtifactPath: path}
}

func failure(reason string, tail []string) Outcome {
	return Outcome{Reason: reason, Tail: tail}
}
