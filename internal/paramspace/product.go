package paramspace

import (
	"sort"

	"github.com/vk/expgrid/internal/param"
)

// Product returns the cartesian product of axes. Names are visited in sorted
// order and the last name varies fastest, so
//
//	Product({x: [0, 1], y: [a, b]})
//
// yields {x=0,y=a}, {x=0,y=b}, {x=1,y=a}, {x=1,y=b}. An empty axis makes the
// product empty, and so does an empty axes map.
func Product(axes map[string][]param.Value) []*param.Set {
	if len(axes) == 0 {
		return []*param.Set{}
	}

	names := make([]string, 0, len(axes))
	total := 1
	for name, values := range axes {
		names = append(names, name)
		total *= len(values)
	}
	sort.Strings(names)
	if total == 0 {
		return []*param.Set{}
	}

	out := make([]*param.Set, 0, total)
	cursor := make([]int, len(names))
	for {
		s := param.New()
		for i, name := range names {
			s.Set(name, axes[name][cursor[i]])
		}
		out = append(out, s)

		// Advance the odometer from the last name.
		i := len(names) - 1
		for ; i >= 0; i-- {
			cursor[i]++
			if cursor[i] < len(axes[names[i]]) {
				break
			}
			cursor[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}
