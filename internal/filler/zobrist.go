package filler

// Entries are hashed independently and XOR-ed together, so the hash does not
// depend on map order and Set/Clear can keep it up to date incrementally.

func splitmix64(z uint64) uint64 {
	z += 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func entryHashKey(c Coord, owner int) uint64 {
	sq := uint64(uint32(c.Y))<<32 | uint64(uint32(c.X))
	return splitmix64(sq ^ splitmix64(uint64(owner)))
}

// Hash returns the incrementally maintained occupation hash.
func (b *Board) Hash() uint64 { return b.hash }

// CalculateHash recomputes the occupation hash from scratch.
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for c, id := range b.occupation {
		h ^= entryHashKey(c, id)
	}
	return h
}
