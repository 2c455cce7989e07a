package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// MappedFile is a memory-mapped .class file. It owns the mapping and the
// underlying os.File handle; callers must call Close once done. The
// ClassReader returned by its Reader method aliases the mapping directly,
// so it must not be used after Close.
type MappedFile struct {
	data mmap.MMap
	f    *os.File
}

// OpenFile memory-maps the .class file at path read-only and constructs a
// ClassReader over it without copying the content into the Go heap
// (spec.md §4.1, "large classfiles / CLI ingestion").
func OpenFile(path string, cfg Config) (*MappedFile, *ClassReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	reader, err := NewClassReaderConfig(data, cfg)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, nil, err
	}
	return &MappedFile{data: data, f: f}, reader, nil
}

// Close unmaps the file and closes the underlying descriptor.
func (m *MappedFile) Close() error {
	if m.data != nil {
		_ = m.data.Unmap()
	}
	if m.f != nil {
		return m.f.Close()
	}
	return nil
}
