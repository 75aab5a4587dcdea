package event

import (
	"fmt"

	"github.com/lixenwraith/duke-roguelike/core"
)

// Damage asks the health owner of To to lose Amount hit points
type Damage struct {
	From   core.Entity
	To     core.Entity
	Amount int32
}

func (*Damage) Kind() Kind { return KindDamage }
func (*Damage) sealed()    {}

func (d *Damage) String() string {
	return fmt.Sprintf("damage %s->%s %d", d.From, d.To, d.Amount)
}

// DeadEntity announces an entity whose health reached zero
type DeadEntity struct {
	Entity core.Entity
}

func (*DeadEntity) Kind() Kind { return KindDeadEntity }
func (*DeadEntity) sealed()    {}

func (d *DeadEntity) String() string {
	return "dead " + d.Entity.String()
}
