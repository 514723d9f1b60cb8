package compose

import (
	"context"

	"github.com/ec-intl/chartly/pkg/chart"
)

// Surface is an opaque handle to one drawing region within a figure
// grid. Surfaces are created by a Renderer and passed back to it for
// each draw call; the composer never inspects them.
type Surface interface{}

// Renderer is the external collaborator that performs the actual chart
// drawing and surface management. Implementations own exactly one
// active figure at a time and make no concurrency guarantees.
type Renderer interface {
	// NewSurface allocates the drawing region at the given row-major
	// grid position. shareWith is the surface whose value-axis scale
	// the new surface should adopt, or nil.
	NewSurface(shape GridShape, pos int, shareWith Surface) (Surface, error)

	// Draw renders one instruction onto a surface. Dataset shape
	// violations fail with a DATA_SHAPE error.
	Draw(s Surface, inst chart.Instruction) error

	// Finalize applies figure-level labels, performs layout
	// adjustment, and flushes the result.
	Finalize(super chart.SuperLabels) error
}

// Bucket is the ordered sequence of draw instructions destined for one
// subplot. Later instructions draw on top of earlier ones.
type Bucket []chart.Instruction

// Composer accumulates draw instructions into subplot buckets and
// replays them onto a grid planned from the subplot count.
//
// The usage protocol: call Overlay for each instruction of the current
// subplot, NewSubplot to seal it and start the next, and Render to
// flush and draw everything. Render always resets the composer, on
// success and on failure, so an instance is immediately reusable.
//
// A Composer is not safe for concurrent use.
type Composer struct {
	pending int      // subplot count, advanced by NewSubplot and the final flush
	sealed  []Bucket // completed buckets, one per subplot position
	current Bucket   // in-progress bucket, unsealed
}

// NewComposer returns an empty composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Overlay appends an instruction to the in-progress subplot. The
// instruction's contents are not validated here; kind-specific dataset
// validation is the renderer's responsibility.
func (c *Composer) Overlay(inst chart.Instruction) {
	c.current = append(c.current, inst)
}

// NewSubplot seals the in-progress bucket and starts a fresh one. The
// subplot count advances unconditionally, but an empty bucket is
// silently dropped rather than sealed; the final flush in Render is the
// only path that seals an empty bucket. This asymmetry is a documented
// quirk of the composition protocol, kept as-is.
func (c *Composer) NewSubplot() {
	c.pending++
	if len(c.current) > 0 {
		c.sealed = append(c.sealed, c.current)
	}
	c.current = nil
}

// SubplotCount returns the number of subplots the composition occupies
// so far: every NewSubplot call plus the unsealed bucket once it holds
// at least one instruction. Render's final flush advances the count one
// more when the unsealed bucket is still empty, leaving a blank cell.
func (c *Composer) SubplotCount() int {
	n := c.pending
	if len(c.current) > 0 {
		n++
	}
	return n
}

// Render flushes the pending bucket, plans the grid, replays every
// bucket onto a fresh surface, and finalizes the figure with the super
// labels. Any renderer failure aborts the whole render and propagates;
// there is no partial-success mode and no retry.
//
// State is reset unconditionally — after Render returns, on success or
// failure, the composer is empty and ready for a new composition.
func (c *Composer) Render(ctx context.Context, r Renderer, super chart.SuperLabels) (err error) {
	// Final flush: like NewSubplot this advances the subplot count
	// unconditionally, but it seals the current bucket even when
	// empty, so a trailing NewSubplot leaves a blank cell.
	c.pending++
	c.sealed = append(c.sealed, c.current)
	c.current = nil
	count := c.pending

	defer c.reset()

	shape, err := PlanGrid(count)
	if err != nil {
		return err
	}

	var first Surface
	for i, bucket := range c.sealed {
		if err := ctx.Err(); err != nil {
			return err
		}

		var shareWith Surface
		if super.ShareAxes && i > 0 {
			shareWith = first
		}

		surface, err := r.NewSurface(shape, i, shareWith)
		if err != nil {
			return err
		}
		if i == 0 {
			first = surface
		}

		for _, inst := range bucket {
			if err := r.Draw(surface, inst); err != nil {
				return err
			}
		}
	}

	return r.Finalize(super)
}

// reset clears all composition state.
func (c *Composer) reset() {
	c.pending = 0
	c.sealed = nil
	c.current = nil
}
