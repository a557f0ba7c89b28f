package tablecodec

import (
	"errors"
	"fmt"
	"math"

	"github.com/statkit/insight/compress"
	"github.com/statkit/insight/endian"
	"github.com/statkit/insight/internal/hash"
	"github.com/statkit/insight/internal/options"
	"github.com/statkit/insight/internal/pool"
	"github.com/statkit/insight/table"
)

const (
	// codecMagic identifies a table payload ("TBL1" in little-endian order).
	codecMagic uint32 = 0x314C4254
	// codecVersion is the current format version.
	codecVersion uint8 = 1
	// headerSize is the fixed byte length of the payload header.
	headerSize = 24

	// maxNameLen bounds a single column name on the wire.
	maxNameLen = math.MaxUint16
)

// Sentinel errors for malformed payloads.
var (
	// ErrInvalidMagic is returned when a payload does not start with the
	// table magic number.
	ErrInvalidMagic = errors.New("invalid table payload magic")
	// ErrUnsupportedVersion is returned for payloads written by a newer
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported table payload version")
	// ErrSchemaMismatch is returned when the decoded column names do not
	// match the schema fingerprint in the header.
	ErrSchemaMismatch = errors.New("column schema does not match header fingerprint")
	// ErrTruncatedPayload is returned when the payload ends mid-field.
	ErrTruncatedPayload = errors.New("truncated table payload")
)

// config holds encoder settings.
type config struct {
	compression compress.Type
}

// Option is a functional option for Encode.
type Option = options.Option[*config]

// WithCompression selects the compression codec for the column data.
// The default is no compression.
func WithCompression(t compress.Type) Option {
	return options.New(func(cfg *config) error {
		if _, err := compress.GetCodec(t); err != nil {
			return err
		}
		cfg.compression = t

		return nil
	})
}

var engine = endian.GetLittleEndianEngine()

// Encode serializes a table into the binary interchange format.
//
// Parameters:
//   - t: table to serialize; must be non-nil
//   - opts: optional encoder settings, e.g. WithCompression
//
// Returns:
//   - []byte: the serialized payload, owned by the caller
//   - error: if the table contains a column of unknown kind or the
//     compression codec fails
func Encode(t *table.Table, opts ...Option) ([]byte, error) {
	if t == nil {
		return nil, errors.New("no table provided")
	}

	cfg := &config{compression: compress.TypeNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	body := pool.GetTableBuffer()
	defer pool.PutTableBuffer(body)

	for _, col := range t.Columns() {
		if err := encodeColumn(body, &col); err != nil {
			return nil, err
		}
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(body.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress table payload: %w", err)
	}

	out := make([]byte, 0, headerSize+len(compressed))
	out = engine.AppendUint32(out, codecMagic)
	out = append(out, codecVersion, byte(cfg.compression), 0, 0)
	out = engine.AppendUint32(out, uint32(t.NumColumns()))
	out = engine.AppendUint32(out, uint32(t.NumRows()))
	out = engine.AppendUint64(out, hash.Schema(t.Names()))
	out = append(out, compressed...)

	return out, nil
}

// encodeColumn appends one column's wire representation to buf.
func encodeColumn(buf *pool.ByteBuffer, col *table.Column) error {
	if len(col.Name) > maxNameLen {
		return fmt.Errorf("column name %q exceeds %d bytes", col.Name[:32], maxNameLen)
	}
	buf.B = engine.AppendUint16(buf.B, uint16(len(col.Name)))
	buf.MustWrite([]byte(col.Name))
	buf.MustWriteByte(byte(col.Kind))

	switch col.Kind {
	case table.KindFloat:
		if col.Valid != nil {
			buf.MustWriteByte(1)
		} else {
			buf.MustWriteByte(0)
		}
		buf.Grow(len(col.Floats) * 8)
		for _, v := range col.Floats {
			buf.B = engine.AppendUint64(buf.B, math.Float64bits(v))
		}
		if col.Valid != nil {
			buf.MustWrite(packBits(col.Valid))
		}
	case table.KindInt:
		buf.Grow(len(col.Ints) * 8)
		for _, v := range col.Ints {
			buf.B = engine.AppendUint64(buf.B, uint64(v))
		}
	case table.KindString:
		for _, s := range col.Strings {
			buf.B = engine.AppendUint32(buf.B, uint32(len(s)))
			buf.MustWrite([]byte(s))
		}
	default:
		return fmt.Errorf("cannot encode column %q of kind %s", col.Name, col.Kind)
	}

	return nil
}

// Decode deserializes a payload produced by Encode.
//
// Returns:
//   - *table.Table: the reconstructed table
//   - error: ErrInvalidMagic, ErrUnsupportedVersion, ErrTruncatedPayload
//     or ErrSchemaMismatch for malformed input; a codec error if
//     decompression fails
func Decode(data []byte) (*table.Table, error) {
	if len(data) < headerSize {
		return nil, ErrTruncatedPayload
	}
	if engine.Uint32(data[0:4]) != codecMagic {
		return nil, ErrInvalidMagic
	}
	if data[4] != codecVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}

	compression := compress.Type(data[5])
	numCols := int(engine.Uint32(data[8:12]))
	numRows := int(engine.Uint32(data[12:16]))
	schemaHash := engine.Uint64(data[16:24])

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}
	body, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress table payload: %w", err)
	}

	r := &reader{buf: body}
	cols := make([]table.Column, 0, numCols)
	names := make([]string, 0, numCols)
	for i := 0; i < numCols; i++ {
		col, err := decodeColumn(r, numRows)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		cols = append(cols, col)
		names = append(names, col.Name)
	}
	if r.off != len(r.buf) {
		return nil, fmt.Errorf("%d trailing bytes after last column", len(r.buf)-r.off)
	}
	if hash.Schema(names) != schemaHash {
		return nil, ErrSchemaMismatch
	}

	return table.New(cols...)
}

// decodeColumn reads one column of n rows from r.
func decodeColumn(r *reader, n int) (table.Column, error) {
	nameLen, err := r.uint16()
	if err != nil {
		return table.Column{}, err
	}
	nameBytes, err := r.bytes(int(nameLen))
	if err != nil {
		return table.Column{}, err
	}
	kindByte, err := r.byte()
	if err != nil {
		return table.Column{}, err
	}

	col := table.Column{Name: string(nameBytes), Kind: table.Kind(kindByte)}
	switch col.Kind {
	case table.KindFloat:
		hasMask, err := r.byte()
		if err != nil {
			return table.Column{}, err
		}
		raw, err := r.bytes(n * 8)
		if err != nil {
			return table.Column{}, err
		}
		col.Floats = make([]float64, n)
		for i := 0; i < n; i++ {
			col.Floats[i] = math.Float64frombits(engine.Uint64(raw[i*8:]))
		}
		if hasMask == 1 {
			packed, err := r.bytes((n + 7) / 8)
			if err != nil {
				return table.Column{}, err
			}
			col.Valid = unpackBits(packed, n)
		}
	case table.KindInt:
		raw, err := r.bytes(n * 8)
		if err != nil {
			return table.Column{}, err
		}
		col.Ints = make([]int64, n)
		for i := 0; i < n; i++ {
			col.Ints[i] = int64(engine.Uint64(raw[i*8:]))
		}
	case table.KindString:
		col.Strings = make([]string, n)
		for i := 0; i < n; i++ {
			strLen, err := r.uint32()
			if err != nil {
				return table.Column{}, err
			}
			raw, err := r.bytes(int(strLen))
			if err != nil {
				return table.Column{}, err
			}
			col.Strings[i] = string(raw)
		}
	default:
		return table.Column{}, fmt.Errorf("unknown column kind 0x%02x", kindByte)
	}

	return col, nil
}

// reader is a bounds-checked cursor over a decoded payload body.
type reader struct {
	buf []byte
	off int
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, ErrTruncatedPayload
	}
	b := r.buf[r.off : r.off+n]
	r.off += n

	return b, nil
}

func (r *reader) byte() (byte, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}

	return engine.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}

	return engine.Uint32(b), nil
}

// packBits packs a validity mask into a little-endian bitmap,
// one bit per entry, low bit first.
func packBits(valid []bool) []byte {
	out := make([]byte, (len(valid)+7)/8)
	for i, v := range valid {
		if v {
			out[i/8] |= 1 << (i % 8)
		}
	}

	return out
}

// unpackBits expands a bitmap back into a mask of n entries.
func unpackBits(packed []byte, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = packed[i/8]&(1<<(i%8)) != 0
	}

	return out
}
