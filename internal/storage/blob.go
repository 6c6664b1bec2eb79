package storage

import "io"

// BlobStore holds exported quiz artifacts (printable body + answer key).
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
