package science

import "errors"

var (
	ErrInvalidArgument = errors.New("science: invalid argument")
	ErrTooManyLevels   = errors.New("science: only two relevance levels are supported")
)
