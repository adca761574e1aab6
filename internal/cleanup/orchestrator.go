// Package cleanup removes an order together with its payment proofs.
//
// The proofs live in two places, a database row and a blob in object
// storage, and the order row lives in the database. There is no
// transaction spanning both stores, so the sweep is best effort: each
// proof is handled on its own, failures are recorded in the Report and
// the sweep moves on. Only listing the proofs and deleting the order row
// can abort the whole operation.
package cleanup

import (
	"context"
	"errors"
	"log"

	"github.com/MikeMC777/ordenes-admin/internal/blob"
	"github.com/MikeMC777/ordenes-admin/internal/proof"
)

// OrderDeleter removes order rows.
type OrderDeleter interface {
	DeleteByID(ctx context.Context, id int64) error
}

type Orchestrator struct {
	orders     OrderDeleter
	proofs     proof.Repository
	blobs      blob.Store
	pathPrefix string
}

// New builds an Orchestrator. pathPrefix is the URL segment after which a
// proof's file URL holds the object key (see blob.PublicPrefix).
func New(orders OrderDeleter, proofs proof.Repository, blobs blob.Store, pathPrefix string) *Orchestrator {
	return &Orchestrator{orders: orders, proofs: proofs, blobs: blobs, pathPrefix: pathPrefix}
}

// DeleteOrder removes every proof of orderID, then the order itself.
//
// A listing failure returns a *FatalError with a nil report and no side
// effects. A failure deleting the order row returns a *FatalError together
// with the report of the proofs already swept. Callers must serialize
// calls for the same order.
func (o *Orchestrator) DeleteOrder(ctx context.Context, orderID int64) (*Report, error) {
	proofs, err := o.proofs.ListByOrder(ctx, orderID)
	if err != nil {
		log.Printf("[cleanup] order=%d stage=%s err=%v", orderID, StageListProofs, err)
		return nil, &FatalError{Stage: StageListProofs, OrderID: orderID, Err: err}
	}

	// Once proofs start disappearing the sweep runs to the end.
	ctx = context.WithoutCancel(ctx)

	rep := &Report{OrderID: orderID, Proofs: make([]ProofOutcome, 0, len(proofs))}
	for _, p := range proofs {
		out := o.sweep(ctx, p)
		if out.Result != ResultOK {
			log.Printf("[cleanup] order=%d proof=%d result=%s err=%v", orderID, p.ID, out.Result, out.Err)
		}
		rep.Proofs = append(rep.Proofs, out)
	}

	if err := o.orders.DeleteByID(ctx, orderID); err != nil {
		log.Printf("[cleanup] order=%d stage=%s err=%v (%s)", orderID, StageDeleteOrder, err, rep.Summary())
		return rep, &FatalError{Stage: StageDeleteOrder, OrderID: orderID, Err: err}
	}
	rep.OrderDeleted = true
	log.Printf("[cleanup] order=%d %s", orderID, rep.Summary())
	return rep, nil
}

// sweep removes one proof: blob first, then its row. The row is kept when
// the blob could not be removed so the reference stays discoverable.
func (o *Orchestrator) sweep(ctx context.Context, p proof.Proof) ProofOutcome {
	out := ProofOutcome{ProofID: p.ID, FileURL: p.FileURL}

	path, ok := blob.PathFromURL(p.FileURL, o.pathPrefix)
	if !ok {
		return out.fail(ResultInvalidPath, &InvalidPathError{URL: p.FileURL})
	}
	out.Path = path

	if err := o.blobs.Delete(ctx, path); err != nil {
		return out.fail(ResultStorageDeleteFailed, err)
	}
	if err := o.proofs.DeleteByID(ctx, p.ID); err != nil && !errors.Is(err, proof.ErrNotFound) {
		return out.fail(ResultRecordDeleteFailed, err)
	}
	out.Result = ResultOK
	return out
}

func (p ProofOutcome) fail(res Result, err error) ProofOutcome {
	p.Result = res
	p.Err = err
	p.Error = err.Error()
	return p
}
