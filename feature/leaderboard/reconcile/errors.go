package reconcile

// kindError is a sentinel that carries its metrics label.
type kindError struct {
	kind string
	msg  string
}

func (e *kindError) Error() string { return e.msg }

// Kind names the failure class.
func (e *kindError) Kind() string { return e.kind }

var (
	// ErrFetch is returned when the leaderboard page could not be fetched or parsed.
	ErrFetch error = &kindError{kind: "fetch", msg: "leaderboard fetch failed"}
	// ErrTransport is returned when reading channel history, sending or editing fails.
	ErrTransport error = &kindError{kind: "transport", msg: "chat transport failed"}
	// ErrStore is returned when the result store could not be read or committed.
	ErrStore error = &kindError{kind: "store", msg: "result store failed"}
	// ErrInvariant is returned when a reconciliation precondition does not hold.
	ErrInvariant error = &kindError{kind: "invariant", msg: "reconciliation invariant violated"}
)
