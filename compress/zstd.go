package compress

// ZstdCompressor provides Zstandard compression for serialized tables.
//
// Zstd gives the best ratio of the built-in codecs, making it the right
// choice when tables are archived or shipped across the network and
// decompression happens infrequently.
//
// The implementation is selected at build time: the default build uses
// the pure-Go klauspost/compress encoder, while the "gozstd" build tag
// switches to the cgo bindings in valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
