// Package loadbalance provides load balancing strategies for distributing
// requests across multiple registered POTP endpoint instances.
//
// Three strategies are implemented:
//   - RoundRobin:      Stateless services, equal-capacity instances
//   - WeightedRandom:  Heterogeneous instances (different CPU/memory)
//   - ConsistentHash:  Stateful services requiring cache affinity
package loadbalance

import "github.com/ozroc/potp-go/registry"

// Balancer is the interface for load balancing strategies.
// potpclient.Dial calls Pick() to select the instance it connects to.
type Balancer interface {
	// Pick selects one instance from the available list.
	// Must be goroutine-safe.
	Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
