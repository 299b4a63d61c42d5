// Package alloc hands out raw byte buffers owned by the caller.
//
// Buffers are ordinary Go slices: they are zero-initialized and released
// by the garbage collector once the caller drops them. Requests are
// checked against a size limit first, so absurd sizes come back as an
// error wrapping ErrAllocationFailure instead of crashing the process.
//
// The limit defaults to 1 TiB and can be set with the HWY_MAX_ALLOC
// environment variable (a byte count) or SetMaxSize. Requests below the
// limit that the machine cannot back still end in the runtime's fatal
// out-of-memory error; that condition is not recoverable in Go.
package alloc

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync/atomic"
	"unsafe"

	"github.com/ajroetker/hwycore/hwy"
)

// CacheLineSize is the alignment AllocateAligned callers usually want.
const CacheLineSize = 64

const defaultMaxSize int64 = 1 << 40

// ErrAllocationFailure is wrapped by every error this package returns.
var ErrAllocationFailure = errors.New("alloc: allocation failure")

var maxSize atomic.Int64

func init() {
	maxSize.Store(maxSizeFromEnv())
}

// maxSizeFromEnv reads HWY_MAX_ALLOC, falling back to the default for
// unset, malformed or non-positive values.
func maxSizeFromEnv() int64 {
	limit := min(defaultMaxSize, int64(math.MaxInt))
	val := os.Getenv("HWY_MAX_ALLOC")
	if val == "" {
		return limit
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil || n <= 0 {
		hwy.Logger().Warn("alloc: ignoring HWY_MAX_ALLOC", "value", val)
		return limit
	}
	return min(n, int64(math.MaxInt))
}

// MaxSize returns the largest size Allocate accepts.
func MaxSize() int64 {
	return maxSize.Load()
}

// SetMaxSize changes the allocation limit and returns the previous one.
// Non-positive values restore the default.
func SetMaxSize(n int64) int64 {
	if n <= 0 {
		n = min(defaultMaxSize, int64(math.MaxInt))
	}
	return maxSize.Swap(min(n, int64(math.MaxInt)))
}

// Allocate returns a zero-initialized buffer of exactly size bytes.
// The caller owns the buffer exclusively.
//
// Fails with an error wrapping ErrAllocationFailure when size is negative
// or larger than MaxSize.
func Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, fail(size, fmt.Errorf("alloc: negative size %d: %w", size, ErrAllocationFailure))
	}
	if limit := maxSize.Load(); int64(size) > limit {
		return nil, fail(size, fmt.Errorf("alloc: size %d exceeds limit %d: %w", size, limit, ErrAllocationFailure))
	}
	return makeBytes(size)
}

// AllocateAligned returns a zero-initialized buffer of exactly size bytes
// whose first byte sits on an align-byte boundary. align must be a
// positive power of two; CacheLineSize is the common choice.
//
// The buffer is carved out of a slightly larger allocation, so its
// capacity equals its length and appending to it reallocates.
func AllocateAligned(size, align int) ([]byte, error) {
	if align < 1 || align&(align-1) != 0 {
		return nil, fail(size, fmt.Errorf("alloc: alignment %d is not a positive power of two: %w", align, ErrAllocationFailure))
	}
	if size < 0 {
		return nil, fail(size, fmt.Errorf("alloc: negative size %d: %w", size, ErrAllocationFailure))
	}
	if size > math.MaxInt-(align-1) {
		return nil, fail(size, fmt.Errorf("alloc: size %d plus alignment %d overflows: %w", size, align, ErrAllocationFailure))
	}
	if size == 0 {
		return []byte{}, nil
	}

	buf, err := Allocate(size + align - 1)
	if err != nil {
		return nil, err
	}

	ptr := uintptr(unsafe.Pointer(&buf[0]))
	offset := 0
	if mod := int(ptr & uintptr(align-1)); mod != 0 {
		offset = align - mod
	}
	return buf[offset : offset+size : offset+size], nil
}

// makeBytes converts the runtime's "len out of range" panic into an error.
func makeBytes(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fail(size, fmt.Errorf("alloc: %v: %w", r, ErrAllocationFailure))
		}
	}()
	return make([]byte, size), nil
}

func fail(size int, err error) error {
	hwy.Logger().Warn("alloc: refused", "size", size, "err", err)
	return err
}
