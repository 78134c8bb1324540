// Package storage provides the named persistence slots the cart mirrors itself
// into: small keyed JSON blobs in local durable storage, the server-side analog
// of browser local storage.
package storage

// Slot is a named blob store. Read reports ok=false for a missing key; Write
// replaces the whole value atomically.
type Slot interface {
	Read(key string) (value []byte, ok bool, err error)
	Write(key string, value []byte) error
	Delete(key string) error
	Close() error
}
