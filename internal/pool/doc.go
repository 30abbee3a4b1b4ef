// Package pool provides reusable plane buffers for scans over packed
// encodings, where every row must be decoded into scratch planes first.
package pool
