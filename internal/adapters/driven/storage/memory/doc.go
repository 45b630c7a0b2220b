// Package memory provides in-process implementations of the driven storage
// ports. State lives for the lifetime of the process, which makes these
// stores suitable for one-shot CLI runs and tests.
package memory
