package detector

import "errors"

var (
	// ErrNotTrained is returned by scoring calls made before any
	// successful training installed a baseline profile.
	ErrNotTrained = errors.New("detector has no baseline profile; train it first")

	// ErrEmptyCorpus is returned when training finds no usable samples.
	// A mean over zero samples is undefined, so this is fatal rather
	// than silently producing a degenerate baseline.
	ErrEmptyCorpus = errors.New("training corpus contains no usable samples")
)
