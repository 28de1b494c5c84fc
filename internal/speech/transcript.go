package speech

// Transcript is a Backend that records utterances instead of voicing them.
// The terminal harness renders it as a scrolling log; tests assert on it.
type Transcript struct {
	lines   []string
	stopped int
	limit   int
}

func NewTranscript(limit int) *Transcript {
	if limit < 1 {
		limit = 200
	}
	return &Transcript{limit: limit}
}

func (t *Transcript) Say(text string) {
	if t == nil || text == "" {
		return
	}
	t.lines = append(t.lines, text)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

func (t *Transcript) Stop() {
	if t == nil {
		return
	}
	t.stopped++
}

// Lines returns the recorded utterances, oldest first.
func (t *Transcript) Lines() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Last returns the most recent utterance, "" when nothing was spoken.
func (t *Transcript) Last() string {
	if t == nil || len(t.lines) == 0 {
		return ""
	}
	return t.lines[len(t.lines)-1]
}

// Stops reports how many times speech was interrupted.
func (t *Transcript) Stops() int {
	if t == nil {
		return 0
	}
	return t.stopped
}
