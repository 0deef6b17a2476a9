package sweep

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest returns a hash of the simulated state: elapsed time, and for every body
// in order its kind, kinematic state and geometry. Body IDs are left out, so two
// scenes built and stepped the same way have the same digest.
func (s *Scene) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}

	write(s.elapsedTime)
	write(s.timeScale)
	for _, body := range s.bodies {
		binary.LittleEndian.PutUint64(buf[:], uint64(body.Kind))
		_, _ = d.Write(buf[:])
		write(body.velocity.X)
		write(body.velocity.Y)
		write(body.inverseMass)
		write(body.restitution)
		for _, sh := range body.shapes {
			switch c := sh.Class.(type) {
			case *Circle:
				write(c.Center.X)
				write(c.Center.Y)
				write(c.Radius)
			case *Segment:
				write(c.A.X)
				write(c.A.Y)
				write(c.B.X)
				write(c.B.Y)
			}
		}
	}
	return d.Sum64()
}
