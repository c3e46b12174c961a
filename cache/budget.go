package cache

import "github.com/shirou/gopsutil/v3/mem"

// fallbackBudget is used when the host memory size cannot be read.
const fallbackBudget = 256 << 20

// DefaultBudget returns the byte budget used when no size is configured:
// a tenth of physical memory.
func DefaultBudget() int64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm.Total == 0 {
		return fallbackBudget
	}
	return int64(vm.Total / 10)
}

// BudgetBytes converts a budget in megabytes to bytes. Non-positive values
// select DefaultBudget.
func BudgetBytes(mb int64) int64 {
	if mb <= 0 {
		return DefaultBudget()
	}
	return mb << 20
}
