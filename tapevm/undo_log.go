package tapevm

// UndoLog is a stack of executed operations.
type UndoLog []Operation

func (l *UndoLog) Push(op Operation) {
	*l = append(*l, op)
}

func (l *UndoLog) Pop() (Operation, bool) {
	n := len(*l)
	if n == 0 {
		return 0, false
	}
	op := (*l)[n-1]
	*l = (*l)[:n-1]
	return op, true
}

func (l UndoLog) Len() int {
	return len(l)
}
