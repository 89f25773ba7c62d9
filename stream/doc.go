// Package stream defines the binary representation used for sorted runs
// during out-of-core sorting: a Header followed by fixed-width Records,
// written once and then read back once, forward only. Although we use
// buffered I/O everywhere, there's no explicit notion of "blocks". The
// exact bytes are an implementation detail, not a compatibility surface.
package stream
