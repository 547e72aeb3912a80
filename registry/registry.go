// Package registry defines the service discovery interface and data types
// used to publish and locate POTP endpoint URIs (SPEC_FULL.md's domain
// stack: discovery sits above the protocol, giving the load balancer a
// source of instance lists to balance across).
//
// Service discovery solves "how does the client find the server?" Instead
// of hardcoding a SAP, servers register their endpoint URI in a central
// registry (etcd), and clients query the registry to find available
// instances.
package registry

// ServiceInstance represents a single running endpoint registered under a
// service name.
type ServiceInstance struct {
	URI     string // full potp:// URI, e.g. "potp://tcp@10.0.0.4:9000/echo"
	Weight  int    // weight for load balancing (higher = more traffic)
	Version string // endpoint version, for canary deployments
}

// Registry is the interface for endpoint registration and discovery.
// Implementations include EtcdRegistry (production) and whatever stand-in
// tests use.
type Registry interface {
	// Register adds an endpoint instance to the registry with a TTL lease.
	// The instance is automatically removed if KeepAlive stops (e.g. the
	// server crashes).
	Register(serviceName string, instance ServiceInstance, ttl int64) error

	// Deregister removes an endpoint instance from the registry. Called
	// during graceful shutdown before closing the listener.
	Deregister(serviceName string, uri string) error

	// Discover returns all currently registered instances for a service.
	// The client calls this to get the instance list for load balancing.
	Discover(serviceName string) ([]ServiceInstance, error)

	// Watch returns a channel that emits updated instance lists whenever
	// the service's instances change (new instances, removals, etc.),
	// enabling real-time discovery without polling.
	Watch(serviceName string) <-chan []ServiceInstance
}
