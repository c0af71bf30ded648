package base

import (
	"context"
	"fmt"
)

// PortManager leases chromedriver ports to concurrent selenium fetches.
// Callers wait for a free port until their context ends.
type PortManager struct {
	free  chan int
	first int
	last  int
}

func NewPortManager(basePort, count int) *PortManager {
	pm := &PortManager{
		free:  make(chan int, count),
		first: basePort,
		last:  basePort + count - 1,
	}
	for port := pm.first; port <= pm.last; port++ {
		pm.free <- port
	}
	return pm
}

// Acquire leases a port, blocking while all of them are in use.
func (pm *PortManager) Acquire(ctx context.Context) (int, error) {
	select {
	case port := <-pm.free:
		return port, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("no free chromedriver port in %d-%d: %w", pm.first, pm.last, ctx.Err())
	}
}

// Release returns a leased port. Ports outside the range are ignored.
func (pm *PortManager) Release(port int) {
	if port < pm.first || port > pm.last {
		return
	}
	select {
	case pm.free <- port:
	default:
	}
}
