package loadbalance

import (
	"fmt"
	"sync/atomic"

	"github.com/ozroc/potp-go/potplog"
	"github.com/ozroc/potp-go/registry"
)

var roundRobinLogger = potplog.New("loadbalance.roundrobin")

// RoundRobinBalancer distributes requests evenly across all registered POTP
// endpoint instances, in order. Uses an atomic counter for lock-free,
// goroutine-safe operation.
//
// Best for: stateless endpoints where all instances have similar capacity.
type RoundRobinBalancer struct {
	counter int64 // Atomic counter, incremented on each Pick()
}

// Pick selects the next instance's URI in round-robin order.
// The atomic counter ensures even distribution without locks.
func (b *RoundRobinBalancer) Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("no instances available")
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(instances))
	picked := &instances[index]
	roundRobinLogger.Debug("picked %s (index %d/%d)", picked.URI, index, len(instances))
	return picked, nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
