package component

import "github.com/lixenwraith/duke-roguelike/core"

// VisionComponent bounds how far an AI notices the player
type VisionComponent struct {
	ViewRange uint32
}

// CanSee reports whether other lies within ViewRange of self, boundary inclusive
func (v VisionComponent) CanSee(self, other core.Position) bool {
	r := float64(v.ViewRange)
	return self.DistanceSquared(other) <= r*r
}
