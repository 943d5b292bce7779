// Package voiceprefs provides the in-process session and state layer for a
// conversational text-to-speech front-end.
//
// It combines a TTL-bounded per-user preference store, a sliding-window rate
// limiter, and time-boxed caches for the voice catalog and remaining
// synthesis quota, composed behind a single Manager. All state is held in
// memory and is intentionally ephemeral; the external catalog and quota
// providers are consumed through small interfaces so they can be swapped or
// faked in tests.
package voiceprefs
