// Package explorer keeps the linked views of the wildfire explorer in sync.
//
// An [Engine] owns the single mutable [Selection] (year, cause, playback status).
// Input sources call its transitions; each applied transition asks the
// [Coordinator] to recompute the affected derived views from the immutable
// dataset and push them to a [Renderer]. A [Scheduler] is a source of synthetic
// year transitions while playback runs.
//
// Transitions, ticks, and the pushes they trigger are serialized by the engine:
// every push caused by one selection value is delivered, in the order
// year label, map, bar chart, heatmap, before the next transition starts.
package explorer
