package cabinet

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec matches any *InvalidSpecError via errors.Is.
var ErrInvalidSpec = errors.New("invalid cabinet spec")

// InvalidSpecError reports a missing or malformed specification. Generation
// is aborted and no model is produced.
type InvalidSpecError struct {
	Field  string // empty when the spec as a whole is unusable
	Reason string
}

func (e *InvalidSpecError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid cabinet spec: %s", e.Reason)
	}
	return fmt.Sprintf("invalid cabinet spec: %s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidSpec) match.
func (e *InvalidSpecError) Is(target error) bool {
	return target == ErrInvalidSpec
}
