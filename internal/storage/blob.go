package storage

import "io"

// BlobStore holds uploaded answer media. Keys are slash-separated paths
// scoped by session, e.g. "sessions/<id>/q3/answer.mp4".
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	// PathOf returns a local filesystem path for stores that have one;
	// the analyze pipeline hands it to ffmpeg.
	PathOf(key string) (string, error)
}
