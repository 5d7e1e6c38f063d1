package filestore

import "mime"

// MIMEResolver maps a file extension (leading dot included) to a media
// type. Implementations return "" when the type cannot be determined.
type MIMEResolver interface {
	TypeByExtension(ext string) string
}

// ExtensionResolver resolves media types from the platform MIME tables.
type ExtensionResolver struct{}

func (ExtensionResolver) TypeByExtension(ext string) string {
	return mime.TypeByExtension(ext)
}
