package domain

import "errors"

// ErrNoCandidate is returned by synthesis collaborators that produced no
// usable graph for an attempt. The refinement pipeline treats it (and any
// other synthesis error) as a consumed attempt, never as a fatal failure.
var ErrNoCandidate = errors.New("no candidate graph produced")

// ErrUnknownTier is returned when a tier name is not one of light,
// standard, or heavy.
var ErrUnknownTier = errors.New("unknown complexity tier")
