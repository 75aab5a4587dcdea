package component

// HealthComponent tracks hit points; only the damage handler mutates Current
type HealthComponent struct {
	Total   uint32 // Maximum hit points, > 0
	Current int32  // May go negative on overkill
}

// NewHealth returns a full health pool
func NewHealth(total uint32) HealthComponent {
	return HealthComponent{Total: total, Current: int32(total)}
}

// Ratio is Current/Total, at most 1 and negative after overkill
func (h HealthComponent) Ratio() float64 {
	if h.Total == 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Total)
}

// IsDead reports whether the entity should be collected
func (h HealthComponent) IsDead() bool {
	return h.Current <= 0
}
