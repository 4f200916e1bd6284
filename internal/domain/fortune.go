package domain

import (
	"cmp"
	"slices"
)

// AdditionalFortuneMessage is appended to the fortune list at request time,
// before sorting, by the /fortunes endpoint.
const AdditionalFortuneMessage = "Additional fortune added at request time."

// Fortune is a read-only benchmark row holding a text message.
type Fortune struct {
	ID      int32  `json:"id"`
	Message string `json:"message"`
}

// Validate checks that the fortune carries a message.
func (f *Fortune) Validate() error {
	if f.Message == "" {
		return ErrEmptyFortuneMessage
	}
	return nil
}

// AdditionalFortune returns the fortune that is added to every /fortunes
// response. It has ID 0 so it can never collide with a stored row.
func AdditionalFortune() *Fortune {
	return &Fortune{ID: 0, Message: AdditionalFortuneMessage}
}

// SortFortunes orders fortunes by message in place. The sort is stable so
// fortunes with equal messages keep their storage order.
func SortFortunes(fortunes []*Fortune) {
	slices.SortStableFunc(fortunes, func(a, b *Fortune) int {
		return cmp.Compare(a.Message, b.Message)
	})
}
