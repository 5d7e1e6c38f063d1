package filestore

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

const boundaryPrefix = "Boundary-"

// newBoundary returns a fresh boundary token, unique per upload.
func newBoundary() string {
	return boundaryPrefix + uuid.NewString()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// uploadBody assembles the two-part multipart/form-data payload for an
// upload: a text part carrying the key and a file part carrying the raw
// content, filename set to the key. The part Content-Type header is written
// even when the resolved media type is empty. Boundary-like sequences
// inside the content are not escaped.
func uploadBody(boundary, key, contentType string, content []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, "", fmt.Errorf("set multipart boundary: %w", err)
	}

	if err := w.WriteField("key", key); err != nil {
		return nil, "", fmt.Errorf("write key part: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(key)))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("write file content: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
