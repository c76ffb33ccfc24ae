package mesh

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/lixenwraith/tiny3d/vmath"
)

// welder deduplicates nodes by their fixed-point value, so vertices that quantize to
// the same point share one index.
type welder struct {
	buckets map[uint64][]int
	nodes   []vmath.Vector3
}

func newWelder() *welder {
	return &welder{buckets: make(map[uint64][]int)}
}

func nodeHash(v vmath.Vector3) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(v.X))
	binary.LittleEndian.PutUint64(buf[8:], uint64(v.Y))
	binary.LittleEndian.PutUint64(buf[16:], uint64(v.Z))
	return xxhash.Sum64(buf[:])
}

// add returns the index of v, appending it if unseen
func (w *welder) add(v vmath.Vector3) int {
	h := nodeHash(v)
	for _, idx := range w.buckets[h] {
		if w.nodes[idx] == v {
			return idx
		}
	}
	idx := len(w.nodes)
	w.nodes = append(w.nodes, v)
	w.buckets[h] = append(w.buckets[h], idx)
	return idx
}
