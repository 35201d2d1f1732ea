package code

import (
	"slices"
)

// Codes is an ordered sequence of Code. Duplicates and nil entries are
// allowed. A Codes value is never modified in place; Concat returns a new one.
type Codes struct {
	items []*Code
}

func NewCodes(items ...*Code) Codes {
	return Codes{items: append([]*Code(nil), items...)}
}

func (c Codes) Len() int { return len(c.items) }

// Items returns a copy of the sequence.
func (c Codes) Items() []*Code {
	return append([]*Code(nil), c.items...)
}

// Get returns the single code named name. Zero matches or more than one
// match both yield false.
func (c Codes) Get(name string) (*Code, bool) {
	var found *Code
	for _, item := range c.items {
		if item == nil || item.name != name {
			continue
		}
		if found != nil {
			return nil, false
		}
		found = item
	}
	return found, found != nil
}

// Concat returns c followed by others, in order, without de-duplication.
func (c Codes) Concat(others ...Codes) Codes {
	n := len(c.items)
	for _, o := range others {
		n += len(o.items)
	}
	items := make([]*Code, 0, n)
	items = append(items, c.items...)
	for _, o := range others {
		items = append(items, o.items...)
	}
	return Codes{items: items}
}

// Append returns a new Codes with items added at the end.
func (c Codes) Append(items ...*Code) Codes {
	return c.Concat(NewCodes(items...))
}

// Sorted returns a copy ordered by Code.Compare. Nil entries sort last.
func (c Codes) Sorted() Codes {
	items := c.Items()
	slices.SortStableFunc(items, func(a, b *Code) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		case b == nil:
			return -1
		}
		return a.Compare(b)
	})
	return Codes{items: items}
}

// Names lists the names of the non-nil entries, in order.
func (c Codes) Names() []string {
	out := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if item != nil {
			out = append(out, item.name)
		}
	}
	return out
}
