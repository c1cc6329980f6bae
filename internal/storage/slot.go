// Package storage provides the persistence port for the record stores: a
// string-keyed slot holding one opaque payload per feature, with file,
// sqlite and in-memory backends.
package storage

// Slot reads and writes one payload per key. Read reports ok=false when the
// key has never been written, which is not an error.
type Slot interface {
	Read(key string) (data []byte, ok bool, err error)
	Write(key string, data []byte) error
}
