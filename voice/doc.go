// Package voice is the engine boundary: it tracks the pitch of a mono
// recording, shifts it by a constant number of Hertz, changes its speed, and
// reports what actually happened.
//
// Every call is a pure computation over its own values. The engine does no
// I/O; a logrus logger may be passed in to receive warnings.
package voice
