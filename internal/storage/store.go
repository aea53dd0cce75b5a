package storage

// ObjectStore is the binary store backing signature images: upload by key,
// durable public URL per uploaded object, fetch by key for document
// rendering.
type ObjectStore interface {
	Upload(key string, data []byte) (string, error)
	Fetch(key string) ([]byte, error)
}
