package cleanup

import (
	"fmt"
)

// Result is the outcome of removing a single proof.
type Result string

const (
	ResultOK                  Result = "ok"
	ResultInvalidPath         Result = "invalid_path"
	ResultStorageDeleteFailed Result = "storage_delete_failed"
	ResultRecordDeleteFailed  Result = "record_delete_failed"
)

type ProofOutcome struct {
	ProofID int64  `json:"proof_id"`
	FileURL string `json:"file_url"`
	Path    string `json:"path,omitempty"`
	Result  Result `json:"result"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

// Report lists what happened to every proof of an order, in the order the
// proofs were processed, and whether the order row itself was removed.
type Report struct {
	OrderID      int64          `json:"order_id"`
	Proofs       []ProofOutcome `json:"proofs"`
	OrderDeleted bool           `json:"order_deleted"`
}

// Count returns how many proofs ended with res.
func (r *Report) Count(res Result) int {
	n := 0
	for _, p := range r.Proofs {
		if p.Result == res {
			n++
		}
	}
	return n
}

// Cleaned is the number of proofs whose blob and row were both removed.
func (r *Report) Cleaned() int { return r.Count(ResultOK) }

func (r *Report) Failures() []ProofOutcome {
	var out []ProofOutcome
	for _, p := range r.Proofs {
		if p.Result != ResultOK {
			out = append(out, p)
		}
	}
	return out
}

// Summary is the aggregate message shown to the admin.
func (r *Report) Summary() string {
	state := "order deleted"
	if !r.OrderDeleted {
		state = "order not deleted"
	}
	return fmt.Sprintf("%d of %d proofs cleaned up; %s", r.Cleaned(), len(r.Proofs), state)
}

// InvalidPathError is recorded when a proof URL does not contain the
// storage prefix.
type InvalidPathError struct {
	URL string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("file url %q does not point into the storage bucket", e.URL)
}

// Stage names the step of a cascade that can abort it.
type Stage string

const (
	StageListProofs  Stage = "list_proofs"
	StageDeleteOrder Stage = "delete_order"
)

// FatalError aborts a cascade. At StageListProofs nothing was changed; at
// StageDeleteOrder proofs may already be gone while the order row remains.
type FatalError struct {
	Stage   Stage
	OrderID int64
	Err     error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("delete order %d: %s: %v", e.OrderID, e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Summary describes the state the failed cascade left behind.
func (e *FatalError) Summary() string {
	if e.Stage == StageListProofs {
		return "order deletion aborted, no changes made"
	}
	return "order deletion failed after proof cleanup; order still exists"
}
