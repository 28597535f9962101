package chat

// Transcript is the ordered sequence of visible conversation turns.
type Transcript []Turn

// Pairs returns the number of completed user/assistant pairs.
func (t Transcript) Pairs() int {
	return len(t) / 2
}

// Window returns the suffix holding at most nPairs user/assistant pairs
// (2*nPairs turns). A window larger than the available history returns
// the whole transcript. An empty transcript yields nil.
func (t Transcript) Window(nPairs int) Transcript {
	if len(t) == 0 || nPairs <= 0 {
		return nil
	}
	n := nPairs * 2
	if n >= len(t) {
		n = len(t)
	}
	return t[len(t)-n:]
}

// AuditLog is the append-only export record of the conversation. It is a
// superset of the transcript data plus provenance.
type AuditLog []LogEntry

// Window returns the suffix of at most 2*nPairs entries, mirroring
// Transcript.Window.
func (l AuditLog) Window(nPairs int) AuditLog {
	if len(l) == 0 || nPairs <= 0 {
		return nil
	}
	n := nPairs * 2
	if n >= len(l) {
		n = len(l)
	}
	return l[len(l)-n:]
}
