package sfft

import (
	"errors"
	"math"
)

// restorer is one pass of recursive recovery. Every node it looks at is
// handed to a nested pass with a smaller budget; a node is only accepted
// once the nested result explains its whole cone.
type restorer struct {
	run      *run
	tree     *Tree
	found    *Table
	total    *Table
	sparsity int
	next     int
	step     float64
	rank     int
}

// restore runs recursive recovery of the given rank (>= 2) on base.
// step is the per-level budget divisor sparsity^(1/rank) chosen by the
// outermost call.
func (r *run) restore(base Cone, known *Table, sparsity int, step float64, rank int) (*Table, bool, error) {
	rs := &restorer{
		run:      r,
		tree:     newSubtree(r.dom, base),
		found:    NewTable(),
		total:    known.Clone(),
		sparsity: sparsity,
		next:     max(1, int(math.Round(float64(sparsity)/step))),
		step:     step,
		rank:     rank,
	}

	if err := rs.sparsityTest(rs.tree.Root()); err != nil {
		return nil, false, err
	}

	for !rs.tree.Empty() && rs.within() {
		id := rs.tree.Lightest()
		left, right, err := rs.tree.Split(id)
		if errors.Is(err, ErrMaxDepth) {
			// A singleton whose nested pass was rejected cannot be
			// narrowed further.
			break
		}
		if err != nil {
			return nil, false, err
		}
		r.stats.Splits++

		for _, child := range [2]NodeID{left, right} {
			if err := rs.sparsityTest(child); err != nil {
				return nil, false, err
			}
		}
	}

	if !rs.tree.Empty() || !rs.within() {
		r.stats.FailedPasses++
		r.log.Debug("sfft: recursive pass over budget",
			"rank", rank,
			"level", base.Level,
			"sparsity", sparsity,
			"next", rs.next,
			"leaves", rs.tree.Leaves(),
			"found", rs.found.Len(),
		)
		return nil, false, nil
	}
	return rs.found, true, nil
}

func (rs *restorer) within() bool {
	return rs.tree.Leaves()*rs.next+rs.found.Len() <= rs.sparsity
}

// sparsityTest tries to explain the cone of id with at most next
// frequencies. On success the node is removed and the candidate joins the
// result; otherwise the node stays live for further splitting.
func (rs *restorer) sparsityTest(id NodeID) error {
	r := rs.run
	cone := rs.tree.Cone(id)

	var candidate *Table
	if r.preemptive {
		busy, err := r.hasEnergy(rs.total, cone, rs.sparsity)
		if err != nil {
			return err
		}
		if !busy {
			candidate = NewTable()
		}
	}

	if candidate == nil {
		var (
			ok  bool
			err error
		)
		if rs.rank == 2 {
			candidate, ok, err = r.recoverLevel(cone, rs.total, rs.next)
		} else {
			candidate, ok, err = r.restore(cone, rs.total, rs.next, rs.step, rs.rank-1)
		}
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	merged := Merge(rs.total, candidate)
	busy, err := r.hasEnergy(merged, cone, rs.sparsity)
	if err != nil {
		return err
	}
	if busy {
		r.log.Debug("sfft: candidate does not explain cone",
			"rank", rs.rank,
			"level", cone.Level,
			"candidates", candidate.Len(),
		)
		return nil
	}

	if err := rs.tree.Remove(id); err != nil {
		return err
	}
	rs.found.MergeInto(candidate)
	rs.total = merged
	return nil
}
