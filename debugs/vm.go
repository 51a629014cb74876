package debugs

import "github.com/reusee/undotape/tapevm"

// VMGlobals exposes the state of vm to a tap.
func VMGlobals(vm *tapevm.VM, radius uint16) map[string]any {
	return map[string]any{
		"pc":           vm.PC(),
		"pointer":      vm.Pointer(),
		"cell":         vm.Cell(),
		"halted":       vm.Halted(),
		"log":          vm.Log(),
		"window":       vm.Window(radius),
		"window_start": vm.Pointer() - radius,
		"cell_at": func(pointer int) int {
			return int(vm.CellAt(uint16(pointer)))
		},
	}
}
