// Package tablecodec serializes prediction tables into a compact binary
// interchange format.
//
// A payload starts with a fixed 24-byte little-endian header carrying a
// magic number, format version, compression type, column and row counts,
// and an xxHash64 fingerprint of the column-name schema. The column data
// that follows is compressed as one block with the codec named in the
// header, so readers can dispatch without sniffing the body:
//
//	data, err := tablecodec.Encode(tbl, tablecodec.WithCompression(compress.TypeZstd))
//	...
//	tbl, err := tablecodec.Decode(data)
//
// The schema fingerprint lets a decoder reject payloads whose column
// layout was corrupted or truncated without walking the whole body.
package tablecodec
