package merge

import (
	"fmt"
	"strings"

	"github.com/signadot/notelog/doc"
)

type Kind int

const (
	Added Kind = iota
	Updated
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

// Change describes one field addition, update or removal.
// Old is unset for Added, New is unset for Removed.
type Change struct {
	Kind Kind
	Key  string
	Old  any
	New  any
}

// Render formats c for a history note. Verbose notes include the value.
func (c Change) Render(verbose bool) string {
	if !verbose {
		return c.Kind.String() + " " + c.Key
	}
	switch c.Kind {
	case Updated:
		return fmt.Sprintf("updated %s -> %s", c.Key, doc.FormatValue(c.New))
	case Removed:
		return fmt.Sprintf("removed %s (%s)", c.Key, doc.FormatValue(c.Old))
	default:
		return fmt.Sprintf("added %s (%s)", c.Key, doc.FormatValue(c.New))
	}
}

func (c Change) String() string {
	return c.Render(true)
}

// Narrative joins the rendered changes with "; ".
func Narrative(changes []Change, verbose bool) string {
	parts := make([]string, len(changes))
	for i := range changes {
		parts[i] = changes[i].Render(verbose)
	}
	return strings.Join(parts, "; ")
}

// WithMessage prefixes narrative with a caller message. Either part may be
// empty.
func WithMessage(message, narrative string) string {
	switch {
	case message == "":
		return narrative
	case narrative == "":
		return message
	default:
		return message + "; " + narrative
	}
}
