// Package control suspends change propagation on selected properties of an
// observable object.
//
// A wrapped object routes every tracked key through a per-key state record.
// Active keys write through the reactive store inside a transaction, so each
// write notifies dependent listeners exactly once. Paused keys write into a
// shadow store instead: readers still see the latest value, listeners see
// nothing. Resuming a key optionally replays the buffered value as a single
// change (WithReplayOnResume).
//
//	c, _ := control.NewAuto(control.Object{"query": ""}, control.WithReplayOnResume(true))
//	c.Subscribe(render, "query")
//	_ = c.PauseKey("query")
//	c.Set("query", "go")  // silent, c.Get("query") == "go"
//	_ = c.ResumeKey("query") // render fires once
//
// The reactive engine is injected through reactive.Factory; NewAuto and New
// use the in-memory engine from pkg/reactive.
package control
