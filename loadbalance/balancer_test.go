package loadbalance

import (
	"fmt"
	"testing"

	"github.com/ozroc/potp-go/registry"
)

var testInstances = []registry.ServiceInstance{
	{URI: "potp://tcp@127.0.0.1:8001/echo", Weight: 10, Version: "1.0"},
	{URI: "potp://tcp@127.0.0.1:8002/echo", Weight: 5, Version: "1.0"},
	{URI: "potp://tcp@127.0.0.1:8003/echo", Weight: 10, Version: "1.0"},
}

func TestRoundRobin(t *testing.T) {
	b := &RoundRobinBalancer{}

	// Pick 3 times, should cycle through all instances
	results := make([]string, 3)
	for i := 0; i < 3; i++ {
		inst, err := b.Pick(testInstances)
		if err != nil {
			t.Fatal(err)
		}
		results[i] = inst.URI
	}

	// Pick again, should wrap around to first
	inst, _ := b.Pick(testInstances)
	if inst.URI != results[0] {
		t.Fatalf("expect wrap around to %s, got %s", results[0], inst.URI)
	}
}

func TestRoundRobinEmpty(t *testing.T) {
	b := &RoundRobinBalancer{}
	_, err := b.Pick([]registry.ServiceInstance{})
	if err == nil {
		t.Fatal("expect error for empty instances")
	}
}

func TestWeightedRandom(t *testing.T) {
	b := &WeightedRandomBalancer{}

	counts := map[string]int{}
	n := 10000
	for i := 0; i < n; i++ {
		inst, err := b.Pick(testInstances)
		if err != nil {
			t.Fatal(err)
		}
		counts[inst.URI]++
	}

	// Weight ratio is 10:5:10, so instance 0 and 2 should be ~2x instance 1
	ratio := float64(counts[testInstances[0].URI]) / float64(counts[testInstances[1].URI])
	if ratio < 1.5 || ratio > 2.5 {
		t.Fatalf("weight ratio instance0/instance1 = %.2f, expect ~2.0", ratio)
	}
}

func TestConsistentHash(t *testing.T) {
	b := NewConsistentHashBalancer()
	for i := range testInstances {
		b.Add(&testInstances[i])
	}

	// Same key should always map to the same instance
	inst1, _ := b.Pick("user-123")
	inst2, _ := b.Pick("user-123")
	if inst1.URI != inst2.URI {
		t.Fatalf("same key mapped to different instances: %s vs %s", inst1.URI, inst2.URI)
	}

	// Different keys should (likely) map to different instances
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		inst, _ := b.Pick(fmt.Sprintf("key-%d", i))
		seen[inst.URI] = true
	}

	// With 100 different keys and 3 nodes, we should hit at least 2
	if len(seen) < 2 {
		t.Fatalf("expect at least 2 different instances, got %d", len(seen))
	}
}
