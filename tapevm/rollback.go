package tapevm

// Rollback undoes up to n of the most recent operations, newest first, and returns how many were undone.
// Undoing is not logged, so a rollback cannot itself be rolled back.
func (v *VM) Rollback(n uint) (undone uint) {
	for ; undone < n; undone++ {
		op, ok := v.log.Pop()
		if !ok {
			break
		}
		v.apply(op.Inverse())
	}
	return
}
