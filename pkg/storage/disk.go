// Package storage abstracts where uploaded images live.
//
// Two drivers are available:
//   - "local" — local filesystem under STORAGE_LOCAL_ROOT (default)
//   - "s3"    — S3-compatible object storage, booted only when S3_BUCKET is set
//
// The ingestion workflow only depends on the Disk interface, so tests run
// against a local disk rooted in a temp directory.
package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/huseynesedov/portfolio-backend/config"
	"github.com/huseynesedov/portfolio-backend/pkg/logger"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// PutStream writes from r to path, creating parent directories as needed.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// MakeDirectory creates path (and any parents). Idempotent.
	MakeDirectory(path string) error

	// Files lists non-recursive filenames directly inside directory.
	Files(directory string) ([]string, error)
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	disks["local"] = NewLocal(config.StorageLocalRoot(), config.AppURL())

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk.
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// Default returns the disk selected by STORAGE_DISK.
func Default() Disk { return Use(defaultDisk) }

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}
