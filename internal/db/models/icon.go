package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// Icon identifies one glyph of the fixed icon set the frontend ships.
type Icon string

// The closed icon set. IconFallback is used for any value outside of it.
const (
	IconGift     Icon = "gift"
	IconHeart    Icon = "heart"
	IconTicket   Icon = "ticket"
	IconTrophy   Icon = "trophy"
	IconDollar   Icon = "dollar"
	IconStar     Icon = "star"
	IconUsers    Icon = "users"
	IconZap      Icon = "zap"
	IconGlobe    Icon = "globe"
	IconSparkles Icon = "sparkles"

	IconFallback = IconSparkles
)

// ErrUnknownIcon is returned when an icon name is not part of the icon set.
var ErrUnknownIcon = errors.New("unknown icon")

var knownIcons = map[Icon]struct{}{
	IconGift:     {},
	IconHeart:    {},
	IconTicket:   {},
	IconTrophy:   {},
	IconDollar:   {},
	IconStar:     {},
	IconUsers:    {},
	IconZap:      {},
	IconGlobe:    {},
	IconSparkles: {},
}

// Icons returns the icon set in a stable order.
func Icons() []Icon {
	return []Icon{
		IconGift, IconHeart, IconTicket, IconTrophy, IconDollar,
		IconStar, IconUsers, IconZap, IconGlobe, IconSparkles,
	}
}

// ParseIcon validates name against the icon set. Matching ignores case and surrounding space.
func ParseIcon(name string) (Icon, error) {
	icon := Icon(strings.ToLower(strings.TrimSpace(name)))
	if !icon.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownIcon, name)
	}

	return icon, nil
}

// Valid reports whether i is part of the icon set.
func (i Icon) Valid() bool {
	_, ok := knownIcons[i]
	return ok
}

// OrFallback returns i, or IconFallback when i is not part of the icon set.
func (i Icon) OrFallback() Icon {
	if i.Valid() {
		return i
	}

	return IconFallback
}

// Value implements driver.Valuer and refuses icons outside the set.
func (i Icon) Value() (driver.Value, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIcon, string(i))
	}

	return string(i), nil
}

// Scan implements sql.Scanner. Stored values outside the set read back as the fallback.
func (i *Icon) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*i = IconFallback
	case string:
		*i = Icon(v).OrFallback()
	case []byte:
		*i = Icon(string(v)).OrFallback()
	default:
		return fmt.Errorf("unsupported icon column type %T", value)
	}

	return nil
}
