package pipeline

import (
	"errors"
	"fmt"
)

// Stage names a fatal pipeline stage.
type Stage string

const (
	StageInput       Stage = "input"
	StageDecode      Stage = "decode"
	StageRecognition Stage = "recognition"
)

// Sentinels matched with errors.Is against a *StageError.
var (
	ErrInput       = errors.New("input file missing or unreadable")
	ErrDecode      = errors.New("audio decoding failed")
	ErrRecognition = errors.New("speech recognition failed")
)

// StageError is a fatal failure tagged with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	errs := []error{e.Err}
	if s := e.sentinel(); s != nil {
		errs = append(errs, s)
	}
	return errs
}

func (e *StageError) sentinel() error {
	switch e.Stage {
	case StageInput:
		return ErrInput
	case StageDecode:
		return ErrDecode
	case StageRecognition:
		return ErrRecognition
	default:
		return nil
	}
}

func stageError(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
