package markup

// NoRun marks a missing Prev or Next link.
const NoRun = -1

// Run is the ordered list of nodes produced at one nesting position.
// Prev and Next are indices into Forest.Runs, not ownership edges.
type Run struct {
	Index int
	Depth int
	Prev  int
	Next  int
	Nodes []Node
}

// Forest is an arena of runs chained in document order. A run ends after an
// ElementStart, which descends one level, and after an ElementEnd, which
// returns to the depth of the remaining open elements. Runs are never empty.
//
// A Forest is not modified after Analyze returns and may be read from
// multiple goroutines.
type Forest struct {
	Runs []Run
}

// Len returns the number of runs.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Runs)
}

// Run returns the run at index, or nil when index is out of range.
func (f *Forest) Run(index int) *Run {
	if f == nil || index < 0 || index >= len(f.Runs) {
		return nil
	}
	return &f.Runs[index]
}

// First returns the first run, or nil for an empty forest.
func (f *Forest) First() *Run {
	return f.Run(0)
}

// Last returns the last run, or nil for an empty forest.
func (f *Forest) Last() *Run {
	return f.Run(f.Len() - 1)
}

// NextOf returns the run following r.
func (f *Forest) NextOf(r *Run) *Run {
	if r == nil {
		return nil
	}
	return f.Run(r.Next)
}

// PrevOf returns the run preceding r.
func (f *Forest) PrevOf(r *Run) *Run {
	if r == nil {
		return nil
	}
	return f.Run(r.Prev)
}

// WalkFunc is called for each node. Return a non-nil error to stop the walk.
type WalkFunc func(run *Run, node Node) error

// Walk visits every node in document order by following Next links.
func (f *Forest) Walk(walkFunc WalkFunc) error {
	for run := f.First(); run != nil; run = f.NextOf(run) {
		for _, node := range run.Nodes {
			if err := walkFunc(run, node); err != nil {
				return err
			}
		}
	}
	return nil
}

// WalkBackward visits every node in reverse document order by following
// Prev links.
func (f *Forest) WalkBackward(walkFunc WalkFunc) error {
	for run := f.Last(); run != nil; run = f.PrevOf(run) {
		for idx := len(run.Nodes) - 1; idx >= 0; idx-- {
			if err := walkFunc(run, run.Nodes[idx]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count returns the number of nodes of the given kind.
func (f *Forest) Count(kind NodeKind) int {
	var count int
	_ = f.Walk(func(_ *Run, node Node) error {
		if node.Kind() == kind {
			count++
		}
		return nil
	})
	return count
}

// forestBuilder appends nodes to a Forest, starting a new run lazily after
// each depth change.
type forestBuilder struct {
	forest  *Forest
	depth   int
	pending bool
}

func newForestBuilder() *forestBuilder {
	return &forestBuilder{forest: &Forest{}, pending: true}
}

func (b *forestBuilder) append(node Node) {
	runs := b.forest.Runs
	if b.pending || len(runs) == 0 {
		prev := NoRun
		if len(runs) > 0 {
			prev = len(runs) - 1
			runs[prev].Next = len(runs)
		}
		runs = append(runs, Run{
			Index: len(runs),
			Depth: b.depth,
			Prev:  prev,
			Next:  NoRun,
		})
		b.pending = false
	}

	last := &runs[len(runs)-1]
	last.Nodes = append(last.Nodes, node)
	b.forest.Runs = runs
}

// moveTo ends the current run; the next appended node starts a run at depth.
func (b *forestBuilder) moveTo(depth int) {
	b.depth = depth
	b.pending = true
}
