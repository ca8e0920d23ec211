package capture

// tailBuffer keeps the last max lines pushed into it.
type tailBuffer struct {
	max   int
	lines []string
}

func newTailBuffer(max int) *tailBuffer {
	if max <= 0 {
		max = 5
	}
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Push(line string) {
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = append([]string{}, t.lines[len(t.lines)-t.max:]...)
	}
}

func (t *tailBuffer) Lines() []string {
	if len(t.lines) == 0 {
		return nil
	}
	return append([]string{}, t.lines...)
}
