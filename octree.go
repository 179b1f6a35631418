package main

const (
	OctreeMaxDepth    = 4
	OctreeMaxLeafSize = 4
)

// Octree is an 8-way spatial partition over the live actor list, rebuilt
// from scratch every tick and queried by the bolt broad-phase. An actor
// whose bounding sphere straddles a center plane is duplicated into every
// overlapping octant, so region queries never miss boundary cases; callers
// that need uniqueness must dedupe.
type Octree struct {
	objects  []*Actor
	center   Vec3
	children []*Octree // nil for leaves, otherwise exactly 8

	// root only
	isRoot   bool
	min, max Vec3

	probes int // nodes visited by the last GetObjects call (root only)
}

// NewOctree builds the partition over actors. The root additionally tracks
// the global bounds of all bounding spheres for O(1) query rejection.
func NewOctree(actors []*Actor, maxDepth, maxLeafSize int, isRoot bool) *Octree {
	o := &Octree{objects: actors, isRoot: isRoot}

	if len(actors) == 0 {
		return o
	}

	var sum Vec3
	for i, a := range actors {
		sum = sum.Add(a.Pos)
		if !isRoot {
			continue
		}
		lo := a.Pos.Sub(Vec3{a.Radius, a.Radius, a.Radius})
		hi := a.Pos.Add(Vec3{a.Radius, a.Radius, a.Radius})
		if i == 0 {
			o.min, o.max = lo, hi
			continue
		}
		if lo.X < o.min.X {
			o.min.X = lo.X
		}
		if lo.Y < o.min.Y {
			o.min.Y = lo.Y
		}
		if lo.Z < o.min.Z {
			o.min.Z = lo.Z
		}
		if hi.X > o.max.X {
			o.max.X = hi.X
		}
		if hi.Y > o.max.Y {
			o.max.Y = hi.Y
		}
		if hi.Z > o.max.Z {
			o.max.Z = hi.Z
		}
	}
	o.center = sum.Scale(1 / float64(len(actors)))

	if maxDepth <= 0 || len(actors) <= maxLeafSize {
		return o
	}

	var buckets [8][]*Actor
	for _, a := range actors {
		// Per axis: low half, high half, or both when the sphere
		// straddles the center plane.
		var xs, ys, zs [2]bool
		axisSides(a.Pos.X, a.Radius, o.center.X, &xs)
		axisSides(a.Pos.Y, a.Radius, o.center.Y, &ys)
		axisSides(a.Pos.Z, a.Radius, o.center.Z, &zs)
		for xi := 0; xi < 2; xi++ {
			if !xs[xi] {
				continue
			}
			for yi := 0; yi < 2; yi++ {
				if !ys[yi] {
					continue
				}
				for zi := 0; zi < 2; zi++ {
					if !zs[zi] {
						continue
					}
					oct := xi | yi<<1 | zi<<2
					buckets[oct] = append(buckets[oct], a)
				}
			}
		}
	}

	o.children = make([]*Octree, 8)
	for i := range buckets {
		o.children[i] = NewOctree(buckets[i], maxDepth-1, maxLeafSize, false)
	}
	return o
}

// axisSides marks which half-spaces a sphere extent occupies on one axis
func axisSides(pos, radius, center float64, sides *[2]bool) {
	if pos-radius < center {
		sides[0] = true
	}
	if pos+radius >= center {
		sides[1] = true
	}
}

// GetObjects returns every actor whose octant overlaps the query box.
// The result may contain duplicates. A query box entirely outside the
// root bounds returns nil without touching any child.
func (o *Octree) GetObjects(minX, maxX, minY, maxY, minZ, maxZ float64) []*Actor {
	o.probes = 0
	if o.isRoot && len(o.objects) > 0 {
		if maxX < o.min.X || minX > o.max.X ||
			maxY < o.min.Y || minY > o.max.Y ||
			maxZ < o.min.Z || minZ > o.max.Z {
			return nil
		}
	}
	return o.collect(minX, maxX, minY, maxY, minZ, maxZ, &o.probes)
}

func (o *Octree) collect(minX, maxX, minY, maxY, minZ, maxZ float64, probes *int) []*Actor {
	*probes++
	if o.children == nil {
		return o.objects
	}
	var result []*Actor
	for i, child := range o.children {
		if len(child.objects) == 0 {
			continue
		}
		xi := i & 1
		yi := i >> 1 & 1
		zi := i >> 2 & 1
		if xi == 0 && minX >= o.center.X || xi == 1 && maxX < o.center.X {
			continue
		}
		if yi == 0 && minY >= o.center.Y || yi == 1 && maxY < o.center.Y {
			continue
		}
		if zi == 0 && minZ >= o.center.Z || zi == 1 && maxZ < o.center.Z {
			continue
		}
		result = append(result, child.collect(minX, maxX, minY, maxY, minZ, maxZ, probes)...)
	}
	return result
}
