package isolation

import (
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-isolate/pkg/network"
)

// Criterion selects the system attribute that drives isolation
type Criterion string

const (
	CriterionLoad     Criterion = "load"
	CriterionPriority Criterion = "priority"
)

// Criteria lists every supported criterion
var Criteria = []Criterion{CriterionLoad, CriterionPriority}

// ParseCriterion accepts a criterion name in any case
func ParseCriterion(s string) (Criterion, error) {
	c := Criterion(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CriterionLoad, CriterionPriority:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCriterion, s)
}

// Value returns the attribute this criterion reads from s.
// Anything other than load reads priority.
func (c Criterion) Value(s *network.System) float64 {
	if c == CriterionLoad {
		return s.Attributes.Load
	}
	return float64(s.Attributes.Priority)
}

func (c Criterion) String() string {
	return string(c)
}
