package store

// File name suffixes of a store.
const (
	DictSuffix = ".dict.bin"
	VecSuffix  = ".vec.bin"
)

// Paths returns the dictionary and vector file names for prefix.
func Paths(prefix string) (dict, vec string) {
	return prefix + DictSuffix, prefix + VecSuffix
}
