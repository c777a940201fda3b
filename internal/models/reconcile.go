package models

type ReconcileStatus string

const (
	// No gh session is recorded in the store.
	StatusNoAuth ReconcileStatus = "no-auth"
	// The recorded gh account matches the git identity.
	StatusSynced ReconcileStatus = "sync"
	// The recorded gh account and the git identity disagree.
	StatusConflict ReconcileStatus = "conflict"
)

func (s ReconcileStatus) String() string {
	return string(s)
}

// Reconciliation is the result of comparing the recorded active account with
// the resolved git identity.
type Reconciliation struct {
	Status   ReconcileStatus
	Identity string
	Active   string
}

func (r Reconciliation) HasActive() bool {
	return r.Status != StatusNoAuth
}
