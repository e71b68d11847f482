package activity

import "time"

// Kind clasifica una entrada del registro de actividad.
// @Enum create, feed, play, rest, work, buy, daily, gift, level_up, evolved
type Kind string

const (
	KindCreate  Kind = "create"
	KindFeed    Kind = "feed"
	KindPlay    Kind = "play"
	KindRest    Kind = "rest"
	KindWork    Kind = "work"
	KindBuy     Kind = "buy"
	KindDaily   Kind = "daily"
	KindGift    Kind = "gift"
	KindLevelUp Kind = "level_up"
	KindEvolved Kind = "evolved"
)

func (k Kind) Valid() bool {
	switch k {
	case KindCreate, KindFeed, KindPlay, KindRest, KindWork, KindBuy, KindDaily,
		KindGift, KindLevelUp, KindEvolved:
		return true
	default:
		return false
	}
}

// Entry es un hecho ya ocurrido sobre una mascota. Solo se agrega, nunca se edita.
type Entry struct {
	ID      string
	PetName string

	Kind    Kind
	Message string

	OccurredAt time.Time
}
