package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category key or value is not one of the twelve slots.
var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the twelve scoring slots on a sheet.
type Category int

const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	Choice
	FourOfAKind
	FullHouse
	SmallStraight
	LargeStraight
	Yacht
)

// CategoryCount is the number of scoring slots.
const CategoryCount = 12

var categoryKeys = [CategoryCount]string{
	"ones", "twos", "threes", "fours", "fives", "sixes",
	"choice", "four_of_a_kind", "full_house", "small_straight", "large_straight", "yacht",
}

var categoryNames = [CategoryCount]string{
	"Ones", "Twos", "Threes", "Fours", "Fives", "Sixes",
	"Choice", "Four of a Kind", "Full House", "Small Straight", "Large Straight", "Yacht",
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, CategoryCount)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the twelve slots.
func (c Category) Valid() bool {
	return c >= Ones && c <= Yacht
}

// IsUpper reports whether c scores a single face value.
func (c Category) IsUpper() bool {
	return c >= Ones && c <= Sixes
}

// Face returns the die face counted by an upper category, or 0.
func (c Category) Face() int {
	if !c.IsUpper() {
		return 0
	}
	return int(c) + 1
}

// Key returns the stable wire key, e.g. "full_house".
func (c Category) Key() string {
	if !c.Valid() {
		return ""
	}
	return categoryKeys[c]
}

// String returns the display name, e.g. "Full House".
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText encodes the category as its wire key.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.Key()), nil
}

// UnmarshalText decodes a wire key.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory resolves a wire key to its category.
func ParseCategory(key string) (Category, error) {
	for i, k := range categoryKeys {
		if k == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}
