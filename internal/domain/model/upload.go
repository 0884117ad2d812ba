package model

import "io"

// Upload is a file received from a client that has not been stored yet.
type Upload struct {
	// Filename is the name supplied by the client. Only its extension is kept on disk.
	Filename string
	// Size is the declared size in bytes, or 0 when unknown.
	Size    int64
	Content io.Reader
}

// StoredFile describes an upload after it has been written to durable storage.
type StoredFile struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
}
