package world

// Cull clears the face bits of every occupied cell whose neighbor in that
// direction is occupied. Faces on the chunk boundary stay visible: neighbor
// chunks are not consulted.
//
// Only the chunk's culling region is visited (the generation box plus every
// manually placed cell); cells outside it are never populated. Adding or
// removing blocks afterwards requires a fresh pass.
func Cull(c *Chunk) {
	r := c.cull
	if r.empty() {
		return
	}
	sx, sy, sz := c.opts.ExtentX, c.opts.ExtentY, c.opts.ExtentZ

	for x := r.min.X; x < r.max.X; x++ {
		for y := r.min.Y; y < r.max.Y; y++ {
			for z := r.min.Z; z < r.max.Z; z++ {
				b := c.blocks[c.index(x, y, z)]
				if b == nil {
					continue
				}
				if y < sy-1 && c.occupied(x, y+1, z) {
					b.Faces = b.Faces.Without(FaceTop)
				}
				if y > 0 && c.occupied(x, y-1, z) {
					b.Faces = b.Faces.Without(FaceBottom)
				}
				if x < sx-1 && c.occupied(x+1, y, z) {
					b.Faces = b.Faces.Without(FaceEast)
				}
				if x > 0 && c.occupied(x-1, y, z) {
					b.Faces = b.Faces.Without(FaceWest)
				}
				if z < sz-1 && c.occupied(x, y, z+1) {
					b.Faces = b.Faces.Without(FaceNorth)
				}
				if z > 0 && c.occupied(x, y, z-1) {
					b.Faces = b.Faces.Without(FaceSouth)
				}
			}
		}
	}
}
