package cpu

import "sm83/internal/interrupts"

// Service runs one tick's worth of interrupt-controller work:
// commit a pending EI, wake from HALT, and dispatch the
// highest-priority pending-and-enabled interrupt. Returns the cycles
// the step contributed (0, or 20 on dispatch) for the orchestrator to
// add to the instruction's own cost.
func (c *CPU) Service() uint8 {
	if c.irq.Enabling {
		c.irq.IME = true
		c.irq.Enabling = false
		return 0
	}

	if !c.irq.IME && !c.Halted {
		return 0
	}

	flag, ok := c.irq.NextPending()
	if !ok {
		return 0
	}

	if c.Halted && !c.irq.IME {
		c.Halted = false
		c.PC++
		return 0
	}

	c.irq.IME = false
	c.Halted = false
	c.irq.Clear(flag)
	c.push16(c.PC)
	c.PC = interrupts.Vector(flag)
	return 20
}
