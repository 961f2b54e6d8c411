// Implements the ResourcePool, the capacity-bounded set of agents and the
// FIFO wait list of customers contending for them.

package sim

import (
	"fmt"
	"strings"
)

// CustomerIndex is a customer's position in its Simulator's customer arena.
// The wait list holds indices rather than pointers, so a customer suspended
// in the list is only ever mutated through the arena.
type CustomerIndex int

// pendingRequest is one entry of the wait list.
type pendingRequest struct {
	customer    CustomerIndex
	requestedAt float64
}

// Grant describes a waiting request that a release has just satisfied.
type Grant struct {
	Customer    CustomerIndex
	RequestedAt float64
	Wait        float64
}

// ResourcePool models the agents of the service center.
// At most Capacity customers hold an agent at once; the rest wait in strict
// arrival order. A pool belongs to a single replication.
type ResourcePool struct {
	capacity int
	active   int
	waitQ    []pendingRequest
	head     int // index of the oldest live entry in waitQ
	peakQ    int
	grants   int
	releases int
}

// NewResourcePool creates a pool with the given number of agents.
// Panics if capacity is not positive.
func NewResourcePool(capacity int) *ResourcePool {
	if capacity <= 0 {
		panic(fmt.Sprintf("NewResourcePool: capacity must be > 0, got %d", capacity))
	}
	return &ResourcePool{capacity: capacity}
}

// Request asks for an agent on behalf of customer c at time now.
// Returns true if an agent was granted immediately (zero wait); otherwise the
// request is appended to the tail of the wait list and false is returned.
func (p *ResourcePool) Request(c CustomerIndex, now float64) bool {
	if p.active < p.capacity {
		p.active++
		p.grants++
		p.checkInvariant()
		return true
	}
	p.waitQ = append(p.waitQ, pendingRequest{customer: c, requestedAt: now})
	if q := p.QueueLen(); q > p.peakQ {
		p.peakQ = q
	}
	return false
}

// Release returns an agent at time now. If a request is waiting, the agent is
// handed straight to the oldest one and its Grant is returned with ok=true.
// Panics on a release without a matching grant.
func (p *ResourcePool) Release(now float64) (grant Grant, ok bool) {
	if p.active <= 0 {
		panic(fmt.Sprintf("ResourcePool.Release: release at %.4f with no agent held", now))
	}
	p.active--
	p.releases++

	if p.QueueLen() == 0 {
		p.checkInvariant()
		return Grant{}, false
	}

	next := p.waitQ[p.head]
	p.head++
	if p.head == len(p.waitQ) {
		// Drained: reuse the backing array.
		p.waitQ = p.waitQ[:0]
		p.head = 0
	}

	wait := now - next.requestedAt
	if wait < 0 {
		panic(fmt.Sprintf("ResourcePool.Release: negative wait %.6f for customer index %d", wait, next.customer))
	}
	p.active++
	p.grants++
	p.checkInvariant()
	return Grant{Customer: next.customer, RequestedAt: next.requestedAt, Wait: wait}, true
}

func (p *ResourcePool) checkInvariant() {
	if p.active < 0 || p.active > p.capacity {
		panic(fmt.Sprintf("ResourcePool: active=%d outside [0, %d]", p.active, p.capacity))
	}
	if p.QueueLen() > 0 && p.active != p.capacity {
		panic(fmt.Sprintf("ResourcePool: %d waiting while only %d/%d agents busy", p.QueueLen(), p.active, p.capacity))
	}
}

// Capacity returns the number of agents.
func (p *ResourcePool) Capacity() int { return p.capacity }

// Active returns the number of agents currently serving a customer.
func (p *ResourcePool) Active() int { return p.active }

// QueueLen returns the number of customers in the wait list.
func (p *ResourcePool) QueueLen() int { return len(p.waitQ) - p.head }

// PeakQueueLen returns the longest the wait list has been.
func (p *ResourcePool) PeakQueueLen() int { return p.peakQ }

// Grants returns the total number of grants, immediate or from the wait list.
func (p *ResourcePool) Grants() int { return p.grants }

// Releases returns the total number of releases.
func (p *ResourcePool) Releases() int { return p.releases }

func (p *ResourcePool) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pool(%d/%d busy) [", p.active, p.capacity)
	for i, r := range p.waitQ[p.head:] {
		sb.WriteString(fmt.Sprint(int(r.customer)))
		if i < p.QueueLen()-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
