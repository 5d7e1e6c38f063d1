package filestore

import (
	"strings"
	"testing"
)

func TestUploadBodyFraming(t *testing.T) {
	body, contentType, err := uploadBody("Boundary-test", "notes/today.txt", "text/plain", []byte("line one"))
	if err != nil {
		t.Fatalf("uploadBody returned error: %v", err)
	}

	raw := string(body)
	if !strings.HasPrefix(raw, "--Boundary-test\r\n") {
		t.Errorf("body does not open with the boundary delimiter: %q", raw[:40])
	}
	if !strings.HasSuffix(raw, "--Boundary-test--\r\n") {
		t.Errorf("body does not close with the terminal delimiter: %q", raw[len(raw)-40:])
	}
	if !strings.Contains(raw, `form-data; name="key"`) {
		t.Errorf("key part disposition missing: %q", raw)
	}
	if !strings.Contains(raw, `form-data; name="file"; filename="notes/today.txt"`) {
		t.Errorf("file part disposition missing: %q", raw)
	}
	if contentType != "multipart/form-data; boundary=Boundary-test" {
		t.Errorf("content type = %s", contentType)
	}
}

func TestUploadBodyWritesEmptyContentType(t *testing.T) {
	body, _, err := uploadBody("Boundary-test", "blob", "", []byte{0x00, 0x01})
	if err != nil {
		t.Fatalf("uploadBody returned error: %v", err)
	}
	if !strings.Contains(string(body), "Content-Type: \r\n") {
		t.Errorf("unresolved media type should still emit an empty header, body: %q", body)
	}
}

func TestUploadBodyEscapesFilename(t *testing.T) {
	body, _, err := uploadBody("Boundary-test", `we"ird\name`, "", nil)
	if err != nil {
		t.Fatalf("uploadBody returned error: %v", err)
	}
	if !strings.Contains(string(body), `filename="we\"ird\\name"`) {
		t.Errorf("quotes and backslashes must be escaped in the filename, body: %q", body)
	}
}

func TestNewBoundaryPrefixAndUniqueness(t *testing.T) {
	first := newBoundary()
	second := newBoundary()
	if !strings.HasPrefix(first, "Boundary-") {
		t.Errorf("boundary = %s", first)
	}
	if first == second {
		t.Errorf("boundary not unique per call: %s", first)
	}
}
