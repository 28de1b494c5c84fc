package speech

type utteranceQueue struct {
	ch chan string
}

func newUtteranceQueue(size int) *utteranceQueue {
	if size < 1 {
		size = 16
	}
	return &utteranceQueue{ch: make(chan string, size)}
}

func (q *utteranceQueue) enqueue(text string) bool {
	if q == nil {
		return false
	}
	select {
	case q.ch <- text:
		return true
	default:
		// Drop only when saturated; queued speech is non-critical.
		return false
	}
}

func (q *utteranceQueue) dequeue() (string, bool) {
	if q == nil {
		return "", false
	}
	select {
	case text := <-q.ch:
		return text, true
	default:
		return "", false
	}
}

func (q *utteranceQueue) clear() {
	if q == nil {
		return
	}
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}
