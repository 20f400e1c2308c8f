package entity

// Upload is a file received from a client before it reaches object storage.
type Upload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// StoredObject describes an object written to the bucket.
type StoredObject struct {
	Key         string
	URL         string
	ContentType string
	Width       int
	Height      int
	BlurHash    string
}
