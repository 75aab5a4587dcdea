package parameter

// Player
const (
	PlayerGlyph        = '@'
	PlayerHealth       = 15
	PlayerAttackDamage = 2
)
