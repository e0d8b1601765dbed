// Package api exposes read-only HTTP inspection of a directory of Cub
// files: file listing, table-of-contents queries, and raw block download.
// All block streaming goes through the same bounded-copy core as the CLI.
package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/cubfile/internal/logger"
	"github.com/samcharles93/cubfile/pkg/cub"
)

type Server struct {
	root string
	log  logger.Logger
}

func NewServer(root string, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{root: root, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/files", s.handleListFiles)
	e.GET("/v1/files/:name/toc", s.handleTOC)
	e.GET("/v1/files/:name/blocks/:index", s.handleBlockByIndex)
	e.GET("/v1/files/:name/kinds/:kind", s.handleBlockByKind)
}

func (s *Server) handleListFiles(c *echo.Context) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.log.Error("reading root directory failed", "root", s.root, "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", "reading file directory failed")
	}
	files := make([]FileEntry, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".cub") {
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		files = append(files, FileEntry{Name: ent.Name(), Size: info.Size()})
	}
	return c.JSON(http.StatusOK, FileListResponse{Object: "list", Files: files})
}

func (s *Server) handleTOC(c *echo.Context) error {
	name := c.Param("name")
	src, closeSrc, err := s.openCub(name)
	if err != nil {
		return s.writeOpenError(c, name, err)
	}
	defer func() { _ = closeSrc() }()

	swap, _, err := cub.Check(src)
	if err != nil {
		return writeCubError(c, err)
	}
	toc, err := cub.TOC(src)
	if err != nil {
		return writeCubError(c, err)
	}

	blocks := make([]TOCEntry, len(toc))
	for i, d := range toc {
		blocks[i] = TOCEntry{
			Index:    i,
			Kind:     uint32(d.Kind),
			KindName: d.Kind.String(),
			Offset:   d.Offset,
			Length:   d.Length,
		}
	}
	return c.JSON(http.StatusOK, TOCResponse{
		Object:      "cub.toc",
		File:        name,
		ByteSwapped: swap,
		Blocks:      blocks,
	})
}

func (s *Server) handleBlockByIndex(c *echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return writeBadRequest(c, "index must be a non-negative integer")
	}

	name := c.Param("name")
	src, closeSrc, err := s.openCub(name)
	if err != nil {
		return s.writeOpenError(c, name, err)
	}
	defer func() { _ = closeSrc() }()

	toc, err := cub.TOC(src)
	if err != nil {
		return writeCubError(c, err)
	}
	if len(toc) == 0 {
		return writeCubError(c, cub.ErrCorruptFile)
	}
	if index >= len(toc) || toc[index].Length == 0 {
		return writeNotFound(c, "no block at index "+strconv.Itoa(index))
	}

	return s.streamBlock(c, name, toc[index].Length, func(w io.Writer) error {
		return cub.ExtractByIndex(src, index, w)
	})
}

func (s *Server) handleBlockByKind(c *echo.Context) error {
	kind, ok := parseKindParam(c.Param("kind"))
	if !ok {
		return writeBadRequest(c, "unknown block kind "+strconv.Quote(c.Param("kind")))
	}

	name := c.Param("name")
	src, closeSrc, err := s.openCub(name)
	if err != nil {
		return s.writeOpenError(c, name, err)
	}
	defer func() { _ = closeSrc() }()

	toc, err := cub.TOC(src)
	if err != nil {
		return writeCubError(c, err)
	}
	if len(toc) == 0 {
		return writeCubError(c, cub.ErrCorruptFile)
	}

	// Same lookup rule as the extraction core: the first descriptor of the
	// requested kind decides, even when it is empty.
	match := -1
	for i := range toc {
		if toc[i].Kind == kind {
			match = i
			break
		}
	}
	if match < 0 || toc[match].Length == 0 {
		return writeNotFound(c, "no block of kind "+kind.String())
	}

	return s.streamBlock(c, name, toc[match].Length, func(w io.Writer) error {
		return cub.ExtractByType(src, kind, w)
	})
}

// streamBlock sends a payload as an octet-stream with a known length.
// Failures after the first byte can only be logged; the status line is
// already on the wire.
func (s *Server) streamBlock(c *echo.Context, name string, length uint32, extract func(io.Writer) error) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEOctetStream)
	res.Header().Set(echo.HeaderContentLength, strconv.FormatUint(uint64(length), 10))
	res.WriteHeader(http.StatusOK)

	if err := extract(res); err != nil {
		s.log.Error("block stream aborted", "file", name, "error", err)
		return err
	}
	return nil
}

func (s *Server) writeOpenError(c *echo.Context, name string, err error) error {
	if os.IsNotExist(err) {
		return writeNotFound(c, "no such file "+strconv.Quote(name))
	}
	s.log.Error("opening cub file failed", "file", name, "error", err)
	return writeError(c, http.StatusInternalServerError, "server_error", "opening file failed")
}

// parseKindParam accepts either a kind name (mesh, free-mesh, ...) or a
// numeric type code.
func parseKindParam(raw string) (cub.BlockType, bool) {
	if kind, ok := cub.ParseBlockType(raw); ok {
		return kind, true
	}
	if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return cub.BlockType(n), true
	}
	return 0, false
}

// openCub resolves name inside the served root. Anything that is not a
// plain file name is rejected before touching the filesystem.
func (s *Server) openCub(name string) (io.ReadSeeker, func() error, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, nil, os.ErrNotExist
	}
	return openSource(filepath.Join(s.root, name))
}
