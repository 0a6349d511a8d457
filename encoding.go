package bimap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	_ json.Marshaler   = (*BiMap[int, int])(nil)
	_ json.Unmarshaler = (*BiMap[int, int])(nil)
	_ fmt.Stringer     = (*BiMap[int, int])(nil)
)

// String formats the pairs in ascending left order, as in "bimap[1:a 2:b]".
func (m *BiMap[L, R]) String() string {
	var sb strings.Builder
	sb.WriteString("bimap[")
	first := true
	for l, r := range m.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%v:%v", l, r)
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON encodes the map as an array of [left, right] pairs in ascending left order.
func (m *BiMap[L, R]) MarshalJSON() ([]byte, error) {
	pairs := make([][2]any, 0, m.Len())
	for l, r := range m.All() {
		pairs = append(pairs, [2]any{l, r})
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON replaces the contents of m with pairs decoded from an array of [left, right] arrays. m must have been
// constructed with New or NewOrdered so that its orderings are known. A value repeated on either side yields an error
// wrapping ErrDuplicate; m is left holding the pairs decoded before it.
func (m *BiMap[L, R]) UnmarshalJSON(data []byte) error {
	if m.c == nil {
		return errors.New("bimap: UnmarshalJSON on a map without orderings; construct it with New or NewOrdered")
	}

	var raw [][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Clear()
	for i, pair := range raw {
		var (
			l L
			r R
		)
		if err := json.Unmarshal(pair[0], &l); err != nil {
			return fmt.Errorf("bimap: pair %d left: %w", i, err)
		}
		if err := json.Unmarshal(pair[1], &r); err != nil {
			return fmt.Errorf("bimap: pair %d right: %w", i, err)
		}
		if m.Insert(l, r).IsEnd() {
			return fmt.Errorf("%w: pair %d (%v, %v)", ErrDuplicate, i, l, r)
		}
	}
	return nil
}
