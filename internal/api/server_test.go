package api

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/cubfile/pkg/cub"
)

// writeCub writes a little-endian Cub file with the given payloads. A nil
// payload becomes an absent (zero-length) block.
func writeCub(t *testing.T, path string, kinds []cub.BlockType, payloads [][]byte) {
	t.Helper()

	tocOffset := uint32(28)
	dataOffset := tocOffset + uint32(len(kinds))*24

	var buf bytes.Buffer
	buf.WriteString("CUBE")
	words := []uint32{0x00000000, 0, uint32(len(kinds)), tocOffset, 0, 0}
	for _, w := range words {
		_ = binary.Write(&buf, binary.LittleEndian, w)
	}
	offset := dataOffset
	for i, kind := range kinds {
		length := uint32(len(payloads[i]))
		for _, w := range []uint32{uint32(kind), offset, length, 0, 0, 0} {
			_ = binary.Write(&buf, binary.LittleEndian, w)
		}
		offset += length
	}
	for _, p := range payloads {
		buf.Write(p)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	root := t.TempDir()
	writeCub(t, filepath.Join(root, "model.cub"),
		[]cub.BlockType{cub.BlockMesh, cub.BlockGeneric},
		[][]byte{[]byte("0123456789"), nil})
	writeCub(t, filepath.Join(root, "empty.cub"), nil, nil)
	if err := os.WriteFile(filepath.Join(root, "bad.cub"), []byte("not a container"), 0o644); err != nil {
		t.Fatalf("write bad fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("write txt fixture: %v", err)
	}

	server := NewServer(root, nil)
	e := echo.New()
	e.Use(RequestID())
	server.Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	rec := do(t, e, "/v1/files")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("missing request id header")
	}

	var resp FileListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range resp.Files {
		names[f.Name] = true
	}
	// Listing only filters on extension; validation happens per request.
	for _, want := range []string{"model.cub", "empty.cub", "bad.cub"} {
		if !names[want] {
			t.Fatalf("missing %s in listing: %v", want, names)
		}
	}
	if names["notes.txt"] {
		t.Fatal("non-cub file leaked into listing")
	}
}

func TestTOCEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	rec := do(t, e, "/v1/files/model.cub/toc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp TOCResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode toc response: %v", err)
	}
	if resp.Object != "cub.toc" || resp.File != "model.cub" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if len(resp.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(resp.Blocks))
	}
	if resp.Blocks[0].KindName != "MESH" || resp.Blocks[0].Length != 10 {
		t.Fatalf("unexpected first block: %+v", resp.Blocks[0])
	}
	if resp.Blocks[1].Length != 0 {
		t.Fatalf("absent block should have zero length: %+v", resp.Blocks[1])
	}
}

func TestTOCNotACubFile(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	rec := do(t, e, "/v1/files/bad.cub/toc")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestBlockDownload(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	rec := do(t, e, "/v1/files/model.cub/blocks/0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != echo.MIMEOctetStream {
		t.Fatalf("content type: got %q", ct)
	}
	if got := rec.Body.String(); got != "0123456789" {
		t.Fatalf("payload mismatch: got %q", got)
	}
}

func TestBlockLookupFailures(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)

	tests := []struct {
		path string
		code int
	}{
		{"/v1/files/model.cub/blocks/1", http.StatusNotFound},   // absent block
		{"/v1/files/model.cub/blocks/5", http.StatusNotFound},   // out of range
		{"/v1/files/model.cub/blocks/abc", http.StatusBadRequest},
		{"/v1/files/model.cub/blocks/-1", http.StatusBadRequest},
		{"/v1/files/empty.cub/blocks/0", http.StatusUnprocessableEntity},
		{"/v1/files/missing.cub/blocks/0", http.StatusNotFound},
		{"/v1/files/model.cub/kinds/granite", http.StatusNotFound},
		{"/v1/files/model.cub/kinds/bogus", http.StatusBadRequest},
	}
	for _, tc := range tests {
		rec := do(t, e, tc.path)
		if rec.Code != tc.code {
			t.Errorf("%s: got %d, want %d (body=%s)", tc.path, rec.Code, tc.code, rec.Body.String())
		}
	}
}

func TestBlockByKind(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t)
	rec := do(t, e, "/v1/files/model.cub/kinds/mesh")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "0123456789" {
		t.Fatalf("payload mismatch: got %q", got)
	}

	// Numeric kind codes resolve to the same block.
	numRec := do(t, e, "/v1/files/model.cub/kinds/2")
	if numRec.Code != http.StatusOK || numRec.Body.String() != "0123456789" {
		t.Fatalf("numeric kind lookup failed: %d %q", numRec.Code, numRec.Body.String())
	}
}
