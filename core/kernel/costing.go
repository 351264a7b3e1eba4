package kernel

import "github.com/sirupsen/logrus"

// CostTag identifies a priceable kernel operation. Costing is deliberately
// coarse at the kernel layer — per-instruction WASM metering lives in the
// (out-of-scope) WASM host; the kernel only prices the operations it
// itself performs: frame setup, substate IO, and node lifecycle events.
type CostTag int

const (
	CostCallFrame CostTag = iota
	CostSubstateRead
	CostSubstateWrite
	CostNewObject
	CostGlobalize
	CostDropObject
)

// DefaultCostUnit is charged for any tag that has slipped through the
// cracks — deliberately punitive so an unpriced operation is visible in a
// cost report rather than silently free.
const DefaultCostUnit uint64 = 100_000

var costTable = map[CostTag]uint64{
	CostCallFrame:    50_000,
	CostSubstateRead: 1_000,
	CostSubstateWrite: 2_000,
	CostNewObject:    30_000,
	CostGlobalize:    20_000,
	CostDropObject:   5_000,
}

func unitCost(tag CostTag) uint64 {
	if c, ok := costTable[tag]; ok {
		return c
	}
	return DefaultCostUnit
}

// CostMeter tracks cost units consumed by a transaction against a budget.
// Exhaustion raises CostingError (ErrCostingExhausted), which unwinds every
// open frame and discards the transaction's state changes — the only
// cancellation mechanism the kernel recognizes.
type CostMeter struct {
	budget  uint64
	spent   uint64
	logger  *logrus.Logger
	warned  map[CostTag]bool
}

func NewCostMeter(budget uint64, logger *logrus.Logger) *CostMeter {
	return &CostMeter{budget: budget, logger: logger, warned: make(map[CostTag]bool)}
}

func (m *CostMeter) Charge(tag CostTag) error {
	cost := unitCost(tag)
	if _, ok := costTable[tag]; !ok && !m.warned[tag] {
		m.warned[tag] = true
		if m.logger != nil {
			m.logger.Warnf("kernel: no cost entry for tag %d, charging default", tag)
		}
	}
	if m.spent+cost > m.budget {
		return ErrCostingExhausted
	}
	m.spent += cost
	return nil
}

func (m *CostMeter) Spent() uint64     { return m.spent }
func (m *CostMeter) Remaining() uint64 { return m.budget - m.spent }
