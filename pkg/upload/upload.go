// Package upload implements the acceptance filter and storage placement for
// product image ingestion.
//
// A batch is the pair of multipart fields the works endpoints accept: one
// optional "photoMain" and up to ten "photos". The whole batch is validated
// (extension + declared media type allow-list, per-file size ceiling, field
// counts) before a single byte reaches permanent storage; any invalid file
// rejects the entire batch.
package upload

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
	"github.com/huseynesedov/portfolio-backend/pkg/metrics"
	"github.com/huseynesedov/portfolio-backend/pkg/storage"
)

const (
	// FieldPhotoMain is the single main photo form field.
	FieldPhotoMain = "photoMain"
	// FieldPhotos is the additional photos form field.
	FieldPhotos = "photos"

	// MaxMainPhotos and MaxPhotos bound the batch shape.
	MaxMainPhotos = 1
	MaxPhotos     = 10

	// MaxFileSize is the per-file byte ceiling (10 MiB).
	MaxFileSize int64 = 10 << 20

	// WorksDir is the fixed assets directory, relative to the storage root.
	WorksDir = "uploads/images/works"

	// memoryLimit is how much of the multipart body is buffered in memory
	// while parsing; the rest spills to temp files owned by net/http.
	memoryLimit = 32 << 20
)

// extByMIME maps accepted declared media types to the stored extension.
// The extension of the generated filename comes from the media type, not
// from the client-supplied filename.
var extByMIME = map[string]string{
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// allowedExt is the filename-extension side of the allow-list.
var allowedExt = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
}

// File is one accepted upload, not yet placed on storage.
type File struct {
	Field       string
	Name        string // client-declared filename
	ContentType string
	Size        int64

	header *multipart.FileHeader
}

// Open returns a reader over the file content. The caller must close it.
func (f File) Open() (multipart.File, error) {
	return f.header.Open()
}

// Batch is the validated set of files from one request.
type Batch struct {
	Main  *File
	Items []File
}

// Empty reports whether the request carried no files at all.
func (b Batch) Empty() bool { return b.Main == nil && len(b.Items) == 0 }

// All returns every file in the batch, main photo first.
func (b Batch) All() []File {
	out := make([]File, 0, len(b.Items)+1)
	if b.Main != nil {
		out = append(out, *b.Main)
	}
	return append(out, b.Items...)
}

// ParseBatch parses the request's multipart body and runs the acceptance
// filter over every file. It returns an error as soon as the batch shape or
// any single file is invalid; nothing has been written to permanent storage
// at that point.
func ParseBatch(r *http.Request) (Batch, error) {
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		return Batch{}, apperr.BadRequest("request body is not valid multipart form data")
	}
	if r.MultipartForm == nil {
		return Batch{}, nil
	}
	return FilterBatch(r.MultipartForm.File[FieldPhotoMain], r.MultipartForm.File[FieldPhotos])
}

// FilterBatch validates batch shape and every file header.
func FilterBatch(main, items []*multipart.FileHeader) (Batch, error) {
	if len(main) > MaxMainPhotos {
		metrics.UploadsRejected.WithLabelValues("too_many_files").Inc()
		return Batch{}, apperr.TooManyFiles(FieldPhotoMain, MaxMainPhotos)
	}
	if len(items) > MaxPhotos {
		metrics.UploadsRejected.WithLabelValues("too_many_files").Inc()
		return Batch{}, apperr.TooManyFiles(FieldPhotos, MaxPhotos)
	}

	var batch Batch
	if len(main) == 1 {
		f, err := checkFile(main[0], FieldPhotoMain)
		if err != nil {
			return Batch{}, err
		}
		batch.Main = &f
	}
	for _, h := range items {
		f, err := checkFile(h, FieldPhotos)
		if err != nil {
			return Batch{}, err
		}
		batch.Items = append(batch.Items, f)
	}

	return batch, nil
}

// checkFile applies the per-file acceptance filter: both the filename
// extension and the declared media type must be on the allow-list, and the
// size must be under the ceiling.
func checkFile(h *multipart.FileHeader, field string) (File, error) {
	if h.Size > MaxFileSize {
		metrics.UploadsRejected.WithLabelValues("file_too_large").Inc()
		return File{}, apperr.FileTooLarge(h.Filename, MaxFileSize)
	}

	ext := strings.ToLower(path.Ext(h.Filename))
	if _, ok := allowedExt[ext]; !ok {
		metrics.UploadsRejected.WithLabelValues("unsupported_type").Inc()
		return File{}, apperr.UnsupportedFileType(h.Filename)
	}

	ct := mediaType(h.Header.Get("Content-Type"))
	if _, ok := extByMIME[ct]; !ok {
		metrics.UploadsRejected.WithLabelValues("unsupported_type").Inc()
		return File{}, apperr.UnsupportedFileType(h.Filename)
	}

	return File{
		Field:       field,
		Name:        h.Filename,
		ContentType: ct,
		Size:        h.Size,
		header:      h,
	}, nil
}

// mediaType strips any parameters ("image/png; charset=binary" → "image/png").
func mediaType(ct string) string {
	if idx := strings.IndexByte(ct, ';'); idx >= 0 {
		ct = ct[:idx]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// Placer writes accepted files into the fixed assets directory on a disk.
type Placer struct {
	disk storage.Disk
	dir  string

	// injectable for tests
	now     func() time.Time
	randInt func(int64) int64
}

// NewPlacer builds a placer targeting WorksDir on disk.
func NewPlacer(disk storage.Disk) *Placer {
	return &Placer{
		disk:    disk,
		dir:     WorksDir,
		now:     time.Now,
		randInt: rand.Int63n,
	}
}

// Place writes f to storage under a generated name and returns the stable
// relative path. The destination directory is created on demand. Generated
// names combine a millisecond timestamp with a random suffix; collisions are
// improbable, not impossible.
func (p *Placer) Place(f File) (string, error) {
	if err := p.disk.MakeDirectory(p.dir); err != nil {
		return "", apperr.Storage("mkdir", err)
	}

	name := fmt.Sprintf("image_%d-%d.%s", p.now().UnixMilli(), p.randInt(1_000_000_000), extByMIME[f.ContentType])
	rel := path.Join(p.dir, name)

	src, err := f.Open()
	if err != nil {
		return "", apperr.Storage("open upload", err)
	}
	defer src.Close()

	if err := p.disk.PutStream(rel, io.LimitReader(src, MaxFileSize)); err != nil {
		return "", apperr.Storage("write", err)
	}

	metrics.UploadsAccepted.Inc()
	return rel, nil
}

// URL turns a relative placed path into the public URL clients fetch.
func (p *Placer) URL(rel string) string {
	return p.disk.URL(rel)
}
