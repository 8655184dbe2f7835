package dedupe

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline step an error came from.
type Stage int

const (
	StageScan Stage = iota + 1
	StageDetect
	StageOrganize
	StageIndex
)

// Stage sentinels, matchable with errors.Is against any *WorkflowError.
var (
	ErrScan     = errors.New("error scanning files")
	ErrDetect   = errors.New("error finding duplicates")
	ErrOrganize = errors.New("error organizing duplicates")
	ErrIndex    = errors.New("error creating comprehensive index")
)

func (s Stage) String() string {
	switch s {
	case StageScan:
		return "scan"
	case StageDetect:
		return "detect"
	case StageOrganize:
		return "organize"
	case StageIndex:
		return "index"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

func (s Stage) sentinel() error {
	switch s {
	case StageScan:
		return ErrScan
	case StageDetect:
		return ErrDetect
	case StageOrganize:
		return ErrOrganize
	case StageIndex:
		return ErrIndex
	default:
		return nil
	}
}

// WorkflowError reports which stage failed and the I/O error behind it.
type WorkflowError struct {
	Stage Stage
	Err   error
}

func (e *WorkflowError) Error() string {
	if s := e.Stage.sentinel(); s != nil {
		return fmt.Sprintf("%v: %v", s, e.Err)
	}
	return fmt.Sprintf("%v failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *WorkflowError) Unwrap() error { return e.Err }

// Is matches the sentinel of the failed stage.
func (e *WorkflowError) Is(target error) bool {
	s := e.Stage.sentinel()
	return s != nil && target == s
}

// StageOf returns the stage recorded in err, if err wraps a *WorkflowError.
func StageOf(err error) (Stage, bool) {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Stage, true
	}
	return 0, false
}

func stageError(stage Stage, err error) error {
	return &WorkflowError{Stage: stage, Err: err}
}
