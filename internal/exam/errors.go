package exam

import "errors"

var (
	// ErrInvalidExam wraps every exam file loading or validation failure.
	ErrInvalidExam = errors.New("invalid exam")
	// ErrSubmitted is returned when a submitted session is mutated.
	ErrSubmitted = errors.New("session already submitted")
	// ErrOutOfRange is returned for a question index outside the exam.
	ErrOutOfRange = errors.New("question index out of range")
	// ErrInvalidChoice is returned when a choice answer is not one of the options.
	ErrInvalidChoice = errors.New("response is not one of the choices")
)
