// Package telemetry delivers captured faults to an external collector.
//
// The contract is fire-and-forget: a boundary reports a fault and moves on.
// Nothing here may block or panic into the recovery path, so delivery runs
// in the background and all failures are logged and dropped.
package telemetry
