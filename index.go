package geocache

import (
	"github.com/tidwall/rtree"

	"github.com/unkn0wn-root/geocache/geo"
)

// footprintIndex maps a query geometry to a stored entry whose
// footprint contains it. Candidates come from an R-tree bounding-box
// search; exact containment refines them, so lookups avoid O(n)
// geometry tests.
type footprintIndex[V any] struct {
	tr rtree.RTreeG[*entry[V]]

	// predicate failures repaired since the last drain
	repairErrs []error
}

func newFootprintIndex[V any]() *footprintIndex[V] {
	return &footprintIndex[V]{}
}

func (ix *footprintIndex[V]) insert(e *entry[V]) {
	ix.tr.Insert(e.bounds.Min(), e.bounds.Max(), e)
}

func (ix *footprintIndex[V]) remove(e *entry[V]) {
	ix.tr.Delete(e.bounds.Min(), e.bounds.Max(), e)
}

func (ix *footprintIndex[V]) len() int { return ix.tr.Len() }

// lookup returns the stored entry containing query, or nil when no
// footprint contains it. With overlapping footprints the most recently
// inserted match wins (descending seq): later insertions reflect more
// recent knowledge, and the policy keeps lookups deterministic.
func (ix *footprintIndex[V]) lookup(query geo.Geometry) (*entry[V], error) {
	qb, ok := query.Bounds()
	if !ok {
		return nil, nil
	}

	var (
		best    *entry[V]
		predErr error
	)
	ix.tr.Search(qb.Min(), qb.Max(), func(_, _ [2]float64, e *entry[V]) bool {
		contained, err := ix.contains(e.footprint, query)
		if err != nil {
			predErr = err
			return false
		}
		if contained && (best == nil || e.seq > best.seq) {
			best = e
		}
		return true
	})
	if predErr != nil {
		return nil, predErr
	}
	return best, nil
}

// contains evaluates the containment predicate with the single
// repair-and-retry policy. A failed predicate is never treated as
// "no match".
func (ix *footprintIndex[V]) contains(footprint, query geo.Geometry) (bool, error) {
	return ix.withRetry(footprint, query, geo.Geometry.Contains)
}

// withRetry runs pred once and, on a topology failure, repairs both
// operands and retries exactly once before the failure surfaces. When
// either operand cannot be repaired the original predicate error is
// returned, not the repair error.
func (ix *footprintIndex[V]) withRetry(footprint, query geo.Geometry, pred func(a, b geo.Geometry) (bool, error)) (bool, error) {
	ok, err := pred(footprint, query)
	if err == nil {
		return ok, nil
	}

	rf, ferr := footprint.Repair()
	if ferr != nil {
		return false, err
	}
	rq, qerr := query.Repair()
	if qerr != nil {
		return false, err
	}
	ix.repairErrs = append(ix.repairErrs, err)

	ok, err = pred(rf, rq)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// drainRepairs returns the predicate failures that were repaired since
// the last drain. The controller reports them once its mutex is
// released.
func (ix *footprintIndex[V]) drainRepairs() []error {
	errs := ix.repairErrs
	ix.repairErrs = nil
	return errs
}
