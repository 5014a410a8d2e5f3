package pgqb

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for statement construction and rendering.
var (
	// ErrMissingJoinCondition is returned when a join is rendered before
	// On has supplied its condition.
	ErrMissingJoinCondition = errors.New("pgqb: missing join condition")

	// ErrInvalidSelectTarget is returned when an argument to Select is
	// neither a column, an aliased expression, nor a table.
	ErrInvalidSelectTarget = errors.New("pgqb: invalid select target")
)

// JoinConditionError reports a join rendered without an ON condition.
type JoinConditionError struct {
	Table   string // Quoted name of the joined table
	Keyword string // JOIN, LEFT JOIN or RIGHT JOIN
}

// Error returns the error string.
func (e *JoinConditionError) Error() string {
	return fmt.Sprintf("pgqb: no condition set for %s %s, call On before preparing", e.Keyword, e.Table)
}

// Is reports whether the target error matches JoinConditionError.
// This allows errors.Is(joinErr, ErrMissingJoinCondition) to return true.
func (e *JoinConditionError) Is(err error) bool {
	return err == ErrMissingJoinCondition
}

// NewJoinConditionError returns a new JoinConditionError for the given
// table and join keyword.
func NewJoinConditionError(table, keyword string) *JoinConditionError {
	return &JoinConditionError{Table: table, Keyword: keyword}
}

// IsMissingJoinCondition returns true if the error is a JoinConditionError.
func IsMissingJoinCondition(err error) bool {
	if err == nil {
		return false
	}
	var e *JoinConditionError
	return errors.As(err, &e) || errors.Is(err, ErrMissingJoinCondition)
}

// SelectTargetError reports an unsupported argument passed to Select. It
// is recorded when the selector is constructed and reported by Prepare.
type SelectTargetError struct {
	Target   any // The offending argument
	Position int // Zero-based position in the target list
}

// Error returns the error string.
func (e *SelectTargetError) Error() string {
	return fmt.Sprintf("pgqb: invalid select target %T at position %d", e.Target, e.Position)
}

// Is reports whether the target error matches SelectTargetError.
// This allows errors.Is(targetErr, ErrInvalidSelectTarget) to return true.
func (e *SelectTargetError) Is(err error) bool {
	return err == ErrInvalidSelectTarget
}

// NewSelectTargetError returns a new SelectTargetError for the argument at
// the given position.
func NewSelectTargetError(target any, position int) *SelectTargetError {
	return &SelectTargetError{Target: target, Position: position}
}

// IsInvalidSelectTarget returns true if the error is a SelectTargetError.
func IsInvalidSelectTarget(err error) bool {
	if err == nil {
		return false
	}
	var e *SelectTargetError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidSelectTarget)
}
