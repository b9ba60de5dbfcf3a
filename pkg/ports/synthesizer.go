package ports

import (
	"context"

	"github.com/nvalerio/flowforge/pkg/domain"
)

// Instruction is the rendered synthesis request handed to a Synthesizer.
// The pipeline owns its construction; synthesizers only consume it.
type Instruction interface {
	// Render produces the full instruction text. It is pure: rendering
	// twice yields the same string.
	Render() string
}

// Synthesizer proposes candidate workflow graphs. Implementations must be
// safely retryable: the pipeline calls Synthesize once per attempt with a
// progressively enriched instruction. Returning (nil, nil) means "no
// candidate this time" and is treated the same as an error.
type Synthesizer interface {
	Synthesize(ctx context.Context, instr Instruction) (*domain.Workflow, error)
}
