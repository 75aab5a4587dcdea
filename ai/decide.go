package ai

import (
	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/parameter"
)

// Decide advances the AI state machine one step and returns the resulting action
//
//	Idling -> Angry   player visible, go to player
//	Angry  -> Idling  player lost, wait
//	Angry  -> Afraid  health ratio below flee threshold, go to retreat point
//	Angry             adjacent (d² <= 2) attack, else go to player
//	Afraid -> Idling  player lost, wait
//	Afraid            go to retreat point
func Decide(state *component.AIComponent, player, self core.Position, health component.HealthComponent, vision component.VisionComponent) Action {
	visible := vision.CanSee(self, player)

	switch state.State {
	case component.AIIdling:
		if !visible {
			return Wait()
		}
		state.State = component.AIAngry
		return GoTo(player)

	case component.AIAngry:
		if !visible {
			state.State = component.AIIdling
			return Wait()
		}
		if health.Ratio() < parameter.AIFleeHealthRatio {
			state.State = component.AIAfraid
			return GoTo(RetreatPoint(player, self))
		}
		if self.DistanceSquared(player) <= parameter.AIAttackRangeSquared {
			return Attack(player)
		}
		return GoTo(player)

	case component.AIAfraid:
		if !visible {
			state.State = component.AIIdling
			return Wait()
		}
		return GoTo(RetreatPoint(player, self))
	}

	return Wait()
}

// RetreatPoint is the cell AIRetreatDistance away from the player along the mirrored heading
// Units are mixed: the radian angle is subtracted from 180 as is
func RetreatPoint(player, self core.Position) core.Position {
	theta := parameter.AIRetreatMirror - player.Angle(self)
	return player.GoDistanceTheta(parameter.AIRetreatDistance, theta)
}
