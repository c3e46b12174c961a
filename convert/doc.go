// Package convert turns GloVe text embeddings into the binary store format.
//
// The text format has one record per line: a token followed by its vector
// components, separated by single spaces.
//
//	the 0.418 0.24968 -0.41242 0.1217
//	, 0.013441 0.23682 -0.16899 0.40951
//
// WriteStream writes any record sequence to a dictionary and a vector
// stream. ConvertFile and ConvertBlob add source decompression (gzip, zstd,
// lz4), remote sources via blobstore, and atomic output files.
//
// Conversion is single-pass. It holds only the running offset in memory, so
// sources of any size can be converted.
package convert
