package event

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies an event variant
type Kind uint8

const (
	KindDamage Kind = iota + 1
	KindDeadEntity
)

func (k Kind) String() string {
	switch k {
	case KindDamage:
		return "damage"
	case KindDeadEntity:
		return "dead_entity"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event is the closed set of payloads carried by the bus
// Implemented only by the pointer payload types of this package
type Event interface {
	Kind() Kind
	sealed()
}

var errNilEvent = errors.New("nil event")

// kindOf resolves the variant of ev; nil, typed-nil and foreign payloads are rejected
func kindOf(ev Event) (Kind, error) {
	switch e := ev.(type) {
	case *Damage:
		if e == nil {
			return 0, errors.Wrapf(errNilEvent, "%T", ev)
		}
		return KindDamage, nil
	case *DeadEntity:
		if e == nil {
			return 0, errors.Wrapf(errNilEvent, "%T", ev)
		}
		return KindDeadEntity, nil
	case nil:
		return 0, errNilEvent
	default:
		return 0, errors.Errorf("unknown event %T", ev)
	}
}
