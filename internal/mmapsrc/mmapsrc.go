// Package mmapsrc provides a memory-mapped ByteSource, used by the
// path-form decode entry points. It copies the mapped bytes into an owned
// buffer before returning, then unmaps and closes the file, so a decoded
// Surface never aliases the map (per the format spec's resource rules).
package mmapsrc

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/scigolib/irap/internal/ierrors"
	"github.com/scigolib/irap/internal/iobuf"
	"github.com/scigolib/irap/internal/utils"
)

// ReadFile memory-maps path read-only and returns its contents copied into
// an owned []byte wrapped as an *iobuf.BufferSource.
//
// Some platforms refuse to map a zero-byte file, some don't; this package
// surfaces the same typed error (ierrors.MapEmpty) on both, by checking the
// file size explicitly before ever calling into the platform's mmap
// syscall, rather than letting one platform's quirk leak through as a raw
// OS error.
func ReadFile(path string) (*iobuf.BufferSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ierrors.New(ierrors.IOError, -1, utils.WrapError(fmt.Sprintf("opening %s", path), err))
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, ierrors.New(ierrors.IOError, -1, utils.WrapError(fmt.Sprintf("stat %s", path), err))
	}
	if fi.Size() == 0 {
		return nil, ierrors.New(ierrors.MapEmpty, -1, fmt.Errorf("cannot memory map empty file %s", path))
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, ierrors.New(ierrors.IOError, -1, fmt.Errorf("memory map %s: %w", path, err))
	}
	defer m.Unmap()

	owned := make([]byte, len(m))
	copy(owned, m)

	return iobuf.NewBufferSource(owned), nil
}
