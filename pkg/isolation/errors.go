package isolation

import "errors"

// ErrUnknownCriterion is returned by ParseCriterion for unsupported names
var ErrUnknownCriterion = errors.New("unknown isolation criterion")
