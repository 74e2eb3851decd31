package pipeline

import (
	"context"

	"golang.org/x/xerrors"
)

// fifo processes payloads sequentially, thereby maintaining their order.
type fifo struct {
	proc Processor
}

// NewFIFO returns a StageRunner that processes incoming payloads in a
// first-in-first-out fashion. Each input is passed to the specified
// processor and its output is emitted to the next stage.
//
// FIFO is the only stage runner this pipeline provides: the graph mutations
// performed by the intake stages assume fully serialized delivery, so a
// parallel worker-pool runner has no valid consumer here.
func NewFIFO(proc Processor) StageRunner {
	return fifo{proc: proc}
}

// Run implements StageRunner.
func (f fifo) Run(ctx context.Context, params StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case payloadIn, ok := <-params.Input():
			if !ok {
				return
			}
			payloadOut, err := f.proc.Process(ctx, payloadIn)
			if err != nil {
				wrappedErr := xerrors.Errorf("pipeline stage %d: %w", params.StageIndex(), err)
				maybeEmitError(wrappedErr, params.Error())
				return
			}
			// If the processor did not output a payload for the
			// next stage, there is nothing else to do.
			if payloadOut == nil {
				payloadIn.MarkAsProcessed()
				continue
			}
			select {
			case params.Output() <- payloadOut:
			case <-ctx.Done():
				return
			}
		}
	}
}
