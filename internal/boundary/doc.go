// Package boundary implements a fault-isolation boundary for view trees.
//
// A boundary supervises one protected subtree. While the subtree renders
// cleanly the boundary is invisible; when a render panics, the boundary
// absorbs the failure, records it as a Fault, reports it (structured log in
// development, telemetry sink in production), and swaps in a recovery
// surface. Recovery is manual: "Try Again" re-arms the boundary, "Reload"
// hands control to the host reload primitive.
//
// The boundary only traps failures raised during a guarded Render call.
// Errors in goroutines a component spawns, or in event handlers running
// outside the render path, never reach it and remain the component's
// problem.
package boundary
