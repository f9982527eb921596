package encode

import "github.com/fatih/color"

// Colors maps render roles to sprint functions. The zero value of any
// entry is filled with the identity function, so a partially populated
// Colors is usable.
type Colors struct {
	Field func(...any) string
	Value func(...any) string
	Tag   func(...any) string
	Sep   func(...any) string
}

// NewColors returns the default diagnostic palette.
func NewColors() *Colors {
	return &Colors{
		Field: color.New(color.FgCyan).Sprint,
		Value: color.New(color.FgWhite).Sprint,
		Tag:   color.New(color.FgYellow).Sprint,
		Sep:   color.New(color.FgHiBlack).Sprint,
	}
}

func noColors() *Colors {
	ident := func(a ...any) string {
		if len(a) == 0 {
			return ""
		}
		return a[0].(string)
	}
	return &Colors{Field: ident, Value: ident, Tag: ident, Sep: ident}
}

func (c *Colors) fill() *Colors {
	id := noColors()
	if c.Field == nil {
		c.Field = id.Field
	}
	if c.Value == nil {
		c.Value = id.Value
	}
	if c.Tag == nil {
		c.Tag = id.Tag
	}
	if c.Sep == nil {
		c.Sep = id.Sep
	}
	return c
}
