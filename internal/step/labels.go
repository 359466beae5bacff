package step

import (
	"slices"
	"strings"
	"unicode"
)

// Labels is an ordered set of labels. Order is first-occurrence order.
type Labels []string

// Fields splits s on whitespace into Labels, dropping empty tokens and
// repeated labels.
func Fields(s string) Labels {
	return dedup(strings.Fields(s))
}

// Of builds Labels from an explicit collection, dropping repeats. Labels built
// this way are validated when passed to New.
func Of(labels ...string) Labels {
	return dedup(labels)
}

// Contains reports whether l holds label.
func (l Labels) Contains(label string) bool {
	return slices.Contains(l, label)
}

// Sorted returns a sorted copy of l.
func (l Labels) Sorted() []string {
	out := slices.Clone([]string(l))
	slices.Sort(out)
	return out
}

// String joins the labels with single spaces, the inverse of Fields.
func (l Labels) String() string {
	return strings.Join(l, " ")
}

func dedup(in []string) Labels {
	out := make(Labels, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// normalize dedups l and checks that every label is non-empty and free of
// whitespace.
func normalize(field string, l Labels) (Labels, error) {
	out := dedup(l)
	for _, label := range out {
		if label == "" {
			return nil, &MalformedDescriptorError{Field: field, Label: label, Reason: "label is empty"}
		}
		if strings.IndexFunc(label, unicode.IsSpace) >= 0 {
			return nil, &MalformedDescriptorError{Field: field, Label: label, Reason: "label contains whitespace"}
		}
	}
	return out, nil
}
