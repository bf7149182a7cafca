package ai

import "errors"

var (
	// ErrRateLimited is returned when the generation API reports quota
	// exhaustion; the retry policy waits out the quota window for it.
	ErrRateLimited = errors.New("generation api rate limited")

	// ErrEmptyResponse is returned when the model produced no usable
	// candidate text.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrUnexpectedAnswer is returned when the model's answer is not a
	// member of the candidate set it was given.
	ErrUnexpectedAnswer = errors.New("answer outside candidate set")

	// ErrInvalidContent is returned when generated content violates the
	// length contract.
	ErrInvalidContent = errors.New("generated content out of bounds")
)
