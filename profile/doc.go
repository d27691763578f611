// Package profile provides optional runtime profiling for the mfmt command.
//
// This package integrates [github.com/pkg/profile]. Profiling is enabled at
// build time with the "pprof" build tag; without it [Config.Start] is a no-op
// and [Modes] is empty.
//
// Supported modes when built with the tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Usage:
//
//	go build -tags pprof .
//	mfmt --pprof-mode cpu render '[1:{x}]' --tag 1=b --value x=y
//	go tool pprof ~/.cache/mfmt/pprof/cpu.pprof
//
// The serve command additionally mounts the net/http/pprof handlers under
// /debug when [Enabled] is true.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
