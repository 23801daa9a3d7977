package channel

// Capture records sent values in memory.
type Capture struct {
	Capacity int // Maximum values held; zero is unlimited.
	Values   []int
}

var _ Channel = (*Capture)(nil)

// Reset discards all captured values.
func (cc *Capture) Reset() {
	cc.Values = nil
}

// Send records a value.
func (cc *Capture) Send(value int) (err error) {
	if cc.Capacity > 0 && len(cc.Values) >= cc.Capacity {
		err = ErrChannelFull
		return
	}

	cc.Values = append(cc.Values, value)
	return
}
