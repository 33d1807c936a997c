package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStage   = errors.New("unknown stage")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrStageFailed    = errors.New("stage failed")
)

// StageError reports the stage of an application that could not be built.
type StageError struct {
	Application string
	Stage       string
	Err         error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("building stage '%s' of image '%s': %s", e.Stage, e.Application, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) Is(target error) bool {
	return target == ErrStageFailed
}
