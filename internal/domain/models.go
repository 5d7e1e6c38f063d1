package domain

// Domain contains core models shared across packages.

// File is the (key, url) pair describing a stored object. URL is only
// populated by read operations; mutations echo the key alone.
type File struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}
