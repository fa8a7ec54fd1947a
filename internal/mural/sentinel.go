package mural

import "context"

const DefaultMargin = 400

// Sentinel watches a marker placed after the last tile and loads the next
// page whenever it comes within Margin of the viewport.
type Sentinel struct {
	controller *Controller
	Margin     int
}

func NewSentinel(c *Controller, margin int) *Sentinel {
	if margin < 0 {
		margin = DefaultMargin
	}
	return &Sentinel{controller: c, Margin: margin}
}

// Observe is called with the distance between the viewport end and the
// sentinel, in the same unit as Margin. A negative distance means the
// sentinel is already on screen.
func (s *Sentinel) Observe(ctx context.Context, distance int) Outcome {
	if distance > s.Margin {
		return OutcomeSkipped
	}
	return s.controller.LoadMore(ctx)
}
