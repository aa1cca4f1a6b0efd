package orders

// Local order statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// statusRank orders the local statuses; a transition is legitimate only when
// it moves strictly forward. Cancelled is terminal.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusCancelled: 2,
}

// CanTransition reports whether an order may move from one status to another.
// Re-delivery of the same status is not a transition; duplicates no-op.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	if from == StatusCancelled {
		return false
	}
	return toRank > fromRank
}

// posStatusMap translates the POS status vocabulary into local statuses.
// Order states and payment states share one table because payment events
// drive the same order status field.
var posStatusMap = map[string]string{
	"OPEN":      StatusPending,
	"PROPOSED":  StatusPending,
	"PENDING":   StatusPending,
	"APPROVED":  StatusConfirmed,
	"COMPLETED": StatusConfirmed,
	"CANCELED":  StatusCancelled,
	"CANCELLED": StatusCancelled,
	"VOIDED":    StatusCancelled,
	"FAILED":    StatusCancelled,
}

// MapPOSStatus translates a POS status string to the local status enum.
// Unknown vocabulary maps to nothing; callers treat that as a no-op rather
// than guessing.
func MapPOSStatus(pos string) (string, bool) {
	status, ok := posStatusMap[pos]
	return status, ok
}
