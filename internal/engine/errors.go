package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every ParamError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrObjectiveNotFound is returned for ids missing from the catalog.
var ErrObjectiveNotFound = errors.New("objective not found")

// ParamError rejects a scheduler argument before any state is touched.
type ParamError struct {
	Param string
	Value int
}

func (e ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Param, e.Value)
}

func (e ParamError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func checkLevel(level int) error {
	if level < 0 {
		return ParamError{Param: "level", Value: level}
	}
	return nil
}
