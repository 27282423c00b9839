package domain

// maxChainLength bounds parent-chain walks. A chain longer than this is
// treated the same as a cycle, since no real plan nests this deep.
const maxChainLength = 1000

// indexByID builds a lookup map over the task list. Later duplicates win,
// matching the behavior of loading a plan file top to bottom.
func indexByID(tasks []*Task) map[string]*Task {
	byID := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID
}

// childIndex maps each parent ID to its direct children, in input order.
func childIndex(tasks []*Task) map[string][]*Task {
	children := make(map[string][]*Task)
	for _, t := range tasks {
		if t.ParentID != nil {
			children[*t.ParentID] = append(children[*t.ParentID], t)
		}
	}
	return children
}

// IsLeaf reports whether no task in the list names id as its parent.
// An id that does not appear in the list at all is a leaf.
func IsLeaf(tasks []*Task, id string) bool {
	for _, t := range tasks {
		if t.ParentID != nil && *t.ParentID == id {
			return false
		}
	}
	return true
}

// TaskDepth returns the nesting depth of the task with the given id, where a
// root task has depth 0. A parent reference that points outside the list
// terminates the chain as if the missing parent were a root. Depths are
// memoized in memo across calls, so repeated queries over the same task set
// stay cheap. A cycle in the parent chain fails fast with ErrParentCycle.
func TaskDepth(tasks []*Task, id string, memo map[string]int) (int, error) {
	if memo == nil {
		memo = make(map[string]int)
	}
	if d, ok := memo[id]; ok {
		return d, nil
	}
	byID := indexByID(tasks)

	// Walk up until a root, a missing parent, or a memoized ancestor.
	chain := make([]string, 0, 8)
	onChain := make(map[string]bool)
	cur := id
	base := 0
	for {
		if len(chain) > maxChainLength {
			return 0, ErrDepthExceeded
		}
		if onChain[cur] {
			return 0, ErrParentCycle
		}
		if d, ok := memo[cur]; ok {
			base = d
			break
		}
		chain = append(chain, cur)
		onChain[cur] = true
		t, ok := byID[cur]
		if !ok || t.ParentID == nil {
			// The chain ends at a root, which sits at depth 0, one below
			// the first chained id.
			base = -1
			break
		}
		cur = *t.ParentID
	}

	// Unwind: the last chained id sits directly above the base.
	for i := len(chain) - 1; i >= 0; i-- {
		base++
		memo[chain[i]] = base
	}
	return memo[id], nil
}

// ShouldDecompose decides whether a task warrants being broken into
// subtasks: it must be a leaf, sit above the depth limit, and be rated at
// least complex in size or at least a sprint in time.
func ShouldDecompose(tasks []*Task, task *Task, maxDepth int, memo map[string]int) (bool, error) {
	if !IsLeaf(tasks, task.ID) {
		return false, nil
	}
	depth, err := TaskDepth(tasks, task.ID, memo)
	if err != nil {
		return false, err
	}
	if depth >= maxDepth {
		return false, nil
	}
	return task.Scope.Size.Rank() >= SizeComplex.Rank() ||
		task.Scope.TimeEstimate.Rank() >= TimeSprint.Rank(), nil
}

// FindLongDurationLeafTasks returns the leaf tasks estimated at a sprint or
// longer, preserving input order. These are the tasks worth revisiting when
// a plan still looks too coarse.
func FindLongDurationLeafTasks(tasks []*Task) []*Task {
	var long []*Task
	for _, t := range tasks {
		if t.Scope.TimeEstimate.Rank() >= TimeSprint.Rank() && IsLeaf(tasks, t.ID) {
			long = append(long, t)
		}
	}
	return long
}

// PropagateEstimates lifts size and time estimates upward: every parent ends
// up rated at least as large as the largest of its transitive descendants.
// Tasks are processed deepest first so a single pass is enough, and running
// it again on already-consistent data changes nothing. It returns the IDs of
// the tasks that were adjusted, in input order.
func PropagateEstimates(tasks []*Task) ([]string, error) {
	memo := make(map[string]int)
	for _, t := range tasks {
		if _, err := TaskDepth(tasks, t.ID, memo); err != nil {
			return nil, err
		}
	}
	children := childIndex(tasks)

	order := make([]*Task, len(tasks))
	copy(order, tasks)
	// Stable insertion sort by descending depth keeps input order within a
	// depth level without pulling in sort for a tiny list.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && memo[order[j].ID] > memo[order[j-1].ID]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	changed := make(map[string]bool)
	for _, t := range order {
		for _, child := range children[t.ID] {
			if child.Scope.Size.Rank() > t.Scope.Size.Rank() {
				t.Scope.Size = child.Scope.Size
				changed[t.ID] = true
			}
			if child.Scope.TimeEstimate.Rank() > t.Scope.TimeEstimate.Rank() {
				t.Scope.TimeEstimate = child.Scope.TimeEstimate
				changed[t.ID] = true
			}
		}
	}

	var ids []string
	for _, t := range tasks {
		if changed[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}
