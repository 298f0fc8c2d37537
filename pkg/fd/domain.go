package fd

import (
	"math/bits"

	"github.com/operator-framework/brancher/pkg/branch"
)

// domain is a finite set of integers stored as a bitset relative to the
// initial lower bound lo.
type domain struct {
	lo       int
	min, max int
	size     int
	bits     []uint64
}

func newDomain(min, max int) domain {
	n := max - min + 1
	d := domain{
		lo:   min,
		min:  min,
		max:  max,
		size: n,
		bits: make([]uint64, (n+63)/64),
	}
	for i := 0; i < n; i++ {
		d.bits[i/64] |= 1 << uint(i%64)
	}
	return d
}

func (d *domain) clone() domain {
	c := *d
	c.bits = append([]uint64(nil), d.bits...)
	return c
}

func (d *domain) in(n int) bool {
	if n < d.min || n > d.max {
		return false
	}
	i := n - d.lo
	return d.bits[i/64]&(1<<uint(i%64)) != 0
}

func (d *domain) assigned() bool {
	return d.size == 1
}

// med returns the median value, rounding downwards.
func (d *domain) med() int {
	k := (d.size - 1) / 2
	for v := d.min; v <= d.max; v++ {
		if d.in(v) {
			if k == 0 {
				return v
			}
			k--
		}
	}
	return d.min
}

func (d *domain) values() []int {
	vs := make([]int, 0, d.size)
	for v := d.min; v <= d.max; v++ {
		if d.in(v) {
			vs = append(vs, v)
		}
	}
	return vs
}

func (d *domain) clear(n int) {
	i := n - d.lo
	d.bits[i/64] &^= 1 << uint(i%64)
	d.size--
}

// next returns the smallest value in the domain that is >= n.
func (d *domain) next(n int) int {
	i := n - d.lo
	for w := i / 64; w < len(d.bits); w++ {
		word := d.bits[w]
		if w == i/64 {
			word &= ^uint64(0) << uint(i%64)
		}
		if word != 0 {
			return d.lo + w*64 + bits.TrailingZeros64(word)
		}
	}
	return d.max + 1
}

// prev returns the largest value in the domain that is <= n.
func (d *domain) prev(n int) int {
	i := n - d.lo
	for w := i / 64; w >= 0; w-- {
		word := d.bits[w]
		if w == i/64 && i%64 != 63 {
			word &= (uint64(1) << uint(i%64+1)) - 1
		}
		if word != 0 {
			return d.lo + w*64 + 63 - bits.LeadingZeros64(word)
		}
	}
	return d.min - 1
}

func (d *domain) empty() branch.ModEvent {
	d.size = 0
	return branch.ModEventFailed
}

func (d *domain) event(oldMin, oldMax int) branch.ModEvent {
	switch {
	case d.size == 1:
		return branch.ModEventVal
	case d.min != oldMin || d.max != oldMax:
		return branch.ModEventBnd
	}
	return branch.ModEventDom
}

func (d *domain) eq(n int) branch.ModEvent {
	if !d.in(n) {
		return d.empty()
	}
	if d.size == 1 {
		return branch.ModEventNone
	}
	for i := range d.bits {
		d.bits[i] = 0
	}
	i := n - d.lo
	d.bits[i/64] = 1 << uint(i%64)
	d.min, d.max, d.size = n, n, 1
	return branch.ModEventVal
}

func (d *domain) nq(n int) branch.ModEvent {
	if !d.in(n) {
		return branch.ModEventNone
	}
	if d.size == 1 {
		return d.empty()
	}
	oldMin, oldMax := d.min, d.max
	d.clear(n)
	if n == d.min {
		d.min = d.next(n)
	}
	if n == d.max {
		d.max = d.prev(n)
	}
	return d.event(oldMin, oldMax)
}

func (d *domain) lq(n int) branch.ModEvent {
	if n >= d.max {
		return branch.ModEventNone
	}
	if n < d.min {
		return d.empty()
	}
	oldMin, oldMax := d.min, d.max
	for v := n + 1; v <= d.max; v++ {
		if d.in(v) {
			d.clear(v)
		}
	}
	d.max = d.prev(n)
	return d.event(oldMin, oldMax)
}

func (d *domain) gq(n int) branch.ModEvent {
	if n <= d.min {
		return branch.ModEventNone
	}
	if n > d.max {
		return d.empty()
	}
	oldMin, oldMax := d.min, d.max
	for v := d.min; v < n; v++ {
		if d.in(v) {
			d.clear(v)
		}
	}
	d.min = d.next(n)
	return d.event(oldMin, oldMax)
}
