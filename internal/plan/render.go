package plan

import (
	"fmt"
	"io"
	"slices"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatHCL}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown plan format %q: must be one of %v", s, Formats)
	}
	return f, nil
}

// Render writes p to w in the given format.
func (p *Plan) Render(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return p.WriteText(w)
	case FormatJSON:
		return p.WriteJSON(w)
	case FormatHCL:
		return p.WriteHCL(w)
	default:
		return fmt.Errorf("unknown plan format %q", f)
	}
}
