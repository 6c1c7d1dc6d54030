package types

// Clock counts elapsed time in clock cycles (T) and machine
// cycles (M). One machine cycle is four clock cycles.
type Clock struct {
	T uint64
	M uint64
}

// Set replaces the clock with a cost of t clock cycles.
func (c *Clock) Set(t uint8) {
	c.T = uint64(t)
	c.M = uint64(t) / 4
}

// Add accumulates another clock into c.
func (c *Clock) Add(o Clock) {
	c.T += o.T
	c.M += o.M
}
