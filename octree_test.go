package main

import (
	"math/rand"
	"testing"
)

func randomActors(rng *rand.Rand, n int) []*Actor {
	actors := make([]*Actor, n)
	for i := range actors {
		a := NewActor("t", ClassFighter, 1, Vec3{
			rng.Float64()*2000 - 1000,
			rng.Float64()*2000 - 1000,
			rng.Float64()*2000 - 1000,
		})
		a.Radius = 1 + rng.Float64()*19
		actors[i] = a
	}
	return actors
}

// aabbOverlaps is the brute-force ground truth: does the actor's bounding
// sphere box intersect the query box.
func aabbOverlaps(a *Actor, minX, maxX, minY, maxY, minZ, maxZ float64) bool {
	return a.Pos.X+a.Radius >= minX && a.Pos.X-a.Radius <= maxX &&
		a.Pos.Y+a.Radius >= minY && a.Pos.Y-a.Radius <= maxY &&
		a.Pos.Z+a.Radius >= minZ && a.Pos.Z-a.Radius <= maxZ
}

func TestOctreeFindsEveryOverlappingActor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	actors := randomActors(rng, 60)
	tree := NewOctree(actors, OctreeMaxDepth, OctreeMaxLeafSize, true)

	for q := 0; q < 200; q++ {
		minX := rng.Float64()*2000 - 1000
		minY := rng.Float64()*2000 - 1000
		minZ := rng.Float64()*2000 - 1000
		maxX := minX + rng.Float64()*400
		maxY := minY + rng.Float64()*400
		maxZ := minZ + rng.Float64()*400

		got := make(map[*Actor]bool)
		for _, a := range tree.GetObjects(minX, maxX, minY, maxY, minZ, maxZ) {
			got[a] = true
		}
		for _, a := range actors {
			if aabbOverlaps(a, minX, maxX, minY, maxY, minZ, maxZ) && !got[a] {
				t.Fatalf("query %d: actor at %+v r=%g missing from result",
					q, a.Pos, a.Radius)
			}
		}
	}
}

func TestOctreeRootRejectionSkipsTraversal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	actors := randomActors(rng, 40)
	tree := NewOctree(actors, OctreeMaxDepth, OctreeMaxLeafSize, true)

	// Query box entirely outside the world bounds
	res := tree.GetObjects(1e6, 1e6+10, 1e6, 1e6+10, 1e6, 1e6+10)
	if len(res) != 0 {
		t.Errorf("out-of-bounds query returned %d actors", len(res))
	}
	if tree.probes != 0 {
		t.Errorf("out-of-bounds query visited %d nodes, want 0", tree.probes)
	}

	// An in-bounds query must actually traverse
	tree.GetObjects(-100, 100, -100, 100, -100, 100)
	if tree.probes == 0 {
		t.Error("in-bounds query should visit nodes")
	}
}

func TestOctreeEmpty(t *testing.T) {
	tree := NewOctree(nil, OctreeMaxDepth, OctreeMaxLeafSize, true)
	if res := tree.GetObjects(-10, 10, -10, 10, -10, 10); len(res) != 0 {
		t.Errorf("empty tree returned %d actors", len(res))
	}
}

func TestOctreeStraddlerAppearsInAllOverlappingOctants(t *testing.T) {
	// One big actor at the center plus a spread of small ones to force a
	// split; the big one straddles every center plane.
	rng := rand.New(rand.NewSource(3))
	actors := randomActors(rng, 20)
	big := NewActor("big", ClassCruiser, 1, Vec3{0, 0, 0})
	big.Radius = 500
	actors = append(actors, big)

	tree := NewOctree(actors, OctreeMaxDepth, OctreeMaxLeafSize, true)
	if tree.children == nil {
		t.Fatal("expected the tree to split")
	}
	for i, child := range tree.children {
		found := false
		for _, a := range child.objects {
			if a == big {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("straddling actor missing from octant %d", i)
		}
	}
}

func TestOctreeLeafBelowThresholdDoesNotSplit(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	actors := randomActors(rng, OctreeMaxLeafSize)
	tree := NewOctree(actors, OctreeMaxDepth, OctreeMaxLeafSize, true)
	if tree.children != nil {
		t.Error("tree with <= maxLeafSize actors should stay a leaf")
	}
}
