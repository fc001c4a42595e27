// Package lights models the four traffic-light fixtures of an intersection
// and the on/off state of their bulbs.
//
// The ordering of Position and Color values is part of the wire format:
// a bulb's bit index within a step word is Position*ColorCount + Color.
package lights

import (
	"fmt"
	"strings"
)

// Position identifies one of the four fixtures.
type Position int

const (
	Top    Position = iota // faces downwards
	Right                  // faces leftwards
	Left                   // faces rightwards
	Bottom                 // faces upwards
)

// PositionCount is the number of fixtures.
const PositionCount = 4

// Positions lists every fixture in wire order.
var Positions = [PositionCount]Position{Top, Right, Left, Bottom}

// String returns the string representation of the position.
func (p Position) String() string {
	switch p {
	case Top:
		return "top"
	case Right:
		return "right"
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the four fixtures.
func (p Position) Valid() bool {
	return p >= Top && p <= Bottom
}

// ParsePosition parses a position name as produced by String.
func ParsePosition(s string) (Position, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Positions {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown light position %q", s)
}

// Color identifies one bulb within a fixture.
type Color int

const (
	Red Color = iota
	Yellow
	Green
)

// ColorCount is the number of bulbs per fixture.
const ColorCount = 3

// Colors lists every bulb colour in wire order.
var Colors = [ColorCount]Color{Red, Yellow, Green}

// String returns the string representation of the color.
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the three bulb colours.
func (c Color) Valid() bool {
	return c >= Red && c <= Green
}

// ParseColor parses a colour name as produced by String.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Colors {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown light color %q", s)
}

// BulbCount is the number of addressable bulbs across all fixtures.
const BulbCount = PositionCount * ColorCount

// BulbMask covers every bulb bit of a step word.
const BulbMask uint16 = 1<<BulbCount - 1

// Bit returns the single-bit mask of the bulb (p, c) within a step word.
// It panics if p or c is out of range.
func Bit(p Position, c Color) uint16 {
	if !p.Valid() || !c.Valid() {
		panic(fmt.Sprintf("lights: invalid bulb (%d, %d)", p, c))
	}
	return 1 << (uint(p)*ColorCount + uint(c))
}

// BulbSet is the set of bulbs that are on. The zero value has every bulb off.
type BulbSet struct {
	bits uint16
}

// BulbSetFromBits builds a set from the low twelve bits of a step word.
// Higher bits are ignored.
func BulbSetFromBits(bits uint16) BulbSet {
	return BulbSet{bits: bits & BulbMask}
}

// Bits returns the set in its wire layout.
func (s BulbSet) Bits() uint16 {
	return s.bits
}

// Has reports whether the bulb (p, c) is on.
func (s BulbSet) Has(p Position, c Color) bool {
	return s.bits&Bit(p, c) != 0
}

// With returns a copy of s with the bulb (p, c) on.
func (s BulbSet) With(p Position, c Color) BulbSet {
	return BulbSet{bits: s.bits | Bit(p, c)}
}

// Without returns a copy of s with the bulb (p, c) off.
func (s BulbSet) Without(p Position, c Color) BulbSet {
	return BulbSet{bits: s.bits &^ Bit(p, c)}
}

// Set returns a copy of s with the bulb (p, c) switched to on.
func (s BulbSet) Set(p Position, c Color, on bool) BulbSet {
	if on {
		return s.With(p, c)
	}
	return s.Without(p, c)
}

// Empty reports whether every bulb is off.
func (s BulbSet) Empty() bool {
	return s.bits == 0
}

// Len returns the number of bulbs that are on.
func (s BulbSet) Len() int {
	n := 0
	for _, p := range Positions {
		for _, c := range Colors {
			if s.Has(p, c) {
				n++
			}
		}
	}
	return n
}

// Pattern renders one fixture as three characters in green, yellow, red
// order, using the colour initial for bulbs that are on and '.' otherwise.
func (s BulbSet) Pattern(p Position) string {
	var sb strings.Builder
	for _, c := range [ColorCount]Color{Green, Yellow, Red} {
		if s.Has(p, c) {
			sb.WriteByte(strings.ToUpper(c.String())[0])
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// String returns a compact description such as "top=..R right=G.. left=..R bottom=G..".
func (s BulbSet) String() string {
	parts := make([]string, 0, PositionCount)
	for _, p := range Positions {
		parts = append(parts, p.String()+"="+s.Pattern(p))
	}
	return strings.Join(parts, " ")
}
