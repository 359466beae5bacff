package dag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/expgrid/internal/step"
)

var (
	// ErrCyclicDependency is matched by every CyclicDependencyError.
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrUnknownStep is returned for descriptors that are not registered.
	ErrUnknownStep = errors.New("step not registered")
)

// CyclicDependencyError reports that no execution order exists.
type CyclicDependencyError struct {
	// Steps is every descriptor left unresolved when the sort stalled, in
	// registration order. It includes steps that merely depend on a cycle.
	Steps []*step.Descriptor
	// Cycles holds the strongly connected components among Steps that form
	// cycles, each in registration order. A self-dependent step forms a
	// component of one.
	Cycles [][]*step.Descriptor
}

func (e *CyclicDependencyError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrCyclicDependency.Error())
	for i, cycle := range e.Cycles {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString("cycle ")
		sb.WriteString(joinSteps(cycle))
	}
	fmt.Fprintf(&sb, " (%d unresolved: %s)", len(e.Steps), joinSteps(e.Steps))
	return sb.String()
}

func (e *CyclicDependencyError) Unwrap() error { return ErrCyclicDependency }

func joinSteps(steps []*step.Descriptor) string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
