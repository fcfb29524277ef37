package mirror

// ErrorKind classifies why a mirror operation failed.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindDisconnected
	KindConstraint
	KindNotFound
	KindDriver
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDisconnected:
		return "disconnected"
	case KindConstraint:
		return "constraint"
	case KindNotFound:
		return "not_found"
	case KindDriver:
		return "driver"
	}
	return "unknown"
}

// Result is the outcome of a single mirror mutation. Operations never
// return Go errors past this package; a failure is a Result with OK
// false and a Kind describing what went wrong.
type Result struct {
	OK      bool
	Kind    ErrorKind
	Message string
	// RecordID is the store-assigned internal identity as an opaque
	// string. Set on successful inserts only.
	RecordID string
}

// Err renders the failure message; empty when the operation succeeded.
func (r Result) Err() string {
	if r.OK {
		return ""
	}
	return r.Message
}

func succeeded(recordID string) Result {
	return Result{OK: true, Kind: KindNone, RecordID: recordID}
}

func failed(kind ErrorKind, message string) Result {
	return Result{Kind: kind, Message: message}
}
