package vacation

import (
	"sort"
)

// AllocationOrder decides which cycle is drained first when a debit
// spans several active cycles. It reorders cycles in place; the ledger
// walks them front to back.
type AllocationOrder func(cycles []Cycle)

// SoonestExpiryFirst drains the cycle closest to expiring first, so
// days are not left to lapse while a newer cycle is consumed. This is
// the default policy.
func SoonestExpiryFirst(cycles []Cycle) {
	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].EndDate.Before(cycles[j].EndDate)
	})
}

// LatestExpiryFirst is the reverse order; credits use it so restored
// days land on the cycle with the most life left.
func LatestExpiryFirst(cycles []Cycle) {
	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[j].EndDate.Before(cycles[i].EndDate)
	})
}

// EntitlementTable maps completed years of service to the days earned
// for the service-year cycle starting at that milestone.
type EntitlementTable func(yearsOfService int) int

// DefaultEntitlement is the portal's standard tenure ladder.
func DefaultEntitlement(yearsOfService int) int {
	switch {
	case yearsOfService >= 10:
		return 25
	case yearsOfService >= 5:
		return 20
	default:
		return 15
	}
}
