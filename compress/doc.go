// Package compress provides pluggable compression codecs for serialized
// prediction tables.
//
// The tablecodec package encodes prediction tables into a columnar binary
// payload; this package compresses that payload before it leaves the
// process. Four codecs are available:
//
//   - None: passthrough, for small tables or already-compressed transports
//   - Zstd: best ratio, good default for archival and network transfer
//   - S2: fastest, moderate ratio
//   - LZ4: fast with slightly better ratio than S2 on repetitive columns
//
// By default the Zstd codec is the pure-Go implementation from
// klauspost/compress. Building with the "gozstd" tag swaps in the cgo
// implementation from valyala/gozstd for higher throughput.
//
// All codecs are stateless values and safe for concurrent use.
package compress
