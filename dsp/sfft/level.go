package sfft

// recoverLevel is the single-level recovery: a binary search over a tree
// grafted on base that peels one frequency per singleton leaf.
//
// It returns the coefficients found in base, relative to known, and false
// when more than sparsity leaves and frequencies are in play at once.
func (r *run) recoverLevel(base Cone, known *Table, sparsity int) (*Table, bool, error) {
	found := NewTable()
	total := known.Clone()
	tree := newSubtree(r.dom, base)

	within := func() bool {
		return tree.Leaves()+found.Len() <= sparsity
	}

	for !tree.Empty() && within() {
		id := tree.Lightest()

		if tree.IsSingleton(id) {
			c, err := r.estimate(total, tree.Cone(id))
			if err != nil {
				return nil, false, err
			}
			f := tree.Frequency(id)
			found.Add(f, c)
			total.Add(f, c)
			if err := tree.Remove(id); err != nil {
				return nil, false, err
			}
			continue
		}

		left, right, err := tree.Split(id)
		if err != nil {
			return nil, false, err
		}
		r.stats.Splits++

		for _, child := range [2]NodeID{left, right} {
			busy, err := r.hasEnergy(total, tree.Cone(child), sparsity)
			if err != nil {
				return nil, false, err
			}
			if busy {
				continue
			}
			if err := tree.Remove(child); err != nil {
				return nil, false, err
			}
		}
	}

	if !within() {
		r.stats.FailedPasses++
		r.log.Debug("sfft: single-level pass over budget",
			"level", base.Level,
			"sparsity", sparsity,
			"leaves", tree.Leaves(),
			"found", found.Len(),
		)
		return nil, false, nil
	}
	return found, true, nil
}
