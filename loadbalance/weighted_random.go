package loadbalance

import (
	"fmt"
	"math/rand"

	"github.com/ozroc/potp-go/potplog"
	"github.com/ozroc/potp-go/registry"
)

var weightedRandomLogger = potplog.New("loadbalance.weightedrandom")

// WeightedRandomBalancer selects registered POTP endpoint instances
// probabilistically based on their registry.ServiceInstance.Weight. An
// instance with weight 10 gets roughly 2x the traffic of one with weight 5.
//
// Best for: heterogeneous endpoints (e.g., some instances have more
// CPU/memory than others).
//
// Algorithm:
//  1. Sum all weights → totalWeight
//  2. Generate random number r in [0, totalWeight)
//  3. Subtract each instance's weight from r until r < 0
//  4. The instance that makes r negative is selected
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("no instances available")
	}

	// Calculate total weight
	totalWeight := 0
	for _, v := range instances {
		totalWeight += v.Weight
	}
	if totalWeight <= 0 {
		return nil, fmt.Errorf("total instance weight must be positive, got %d", totalWeight)
	}

	// Random selection proportional to weight
	r := rand.Intn(totalWeight)
	for i := range instances {
		r -= instances[i].Weight
		if r < 0 {
			weightedRandomLogger.Debug("picked %s (weight %d/%d)", instances[i].URI, instances[i].Weight, totalWeight)
			return &instances[i], nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
