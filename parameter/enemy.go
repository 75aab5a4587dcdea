package parameter

// Goblin waves
const (
	GoblinGlyph        = 'G'
	GoblinCount        = 5
	GoblinMinHealth    = 5
	GoblinMaxHealth    = 10
	GoblinViewRange    = 6
	GoblinAttackDamage = 1
)

// AI decisions
const (
	// AIFleeHealthRatio is the health ratio below which an angry AI turns afraid
	AIFleeHealthRatio = 0.25

	// AIRetreatDistance is how far from the player the retreat point lies
	AIRetreatDistance = 10

	// AIAttackRangeSquared admits the 8 neighbouring cells
	AIAttackRangeSquared = 2.0

	// AIRetreatMirror is subtracted from the player/AI angle to get the retreat heading
	AIRetreatMirror = 180
)
