package u8core

import "os"

// StorageConfig names the code/data images a Storage implementation should
// load or save and their expected sizes (spec.md section 6's "config"
// tuple: {codeID, dataID, codeSize, dataSize}). IDs are opaque to the
// core — a host storage stub interprets them however it likes (a file
// path, a blob key, ...).
type StorageConfig struct {
	CodeID   string
	DataID   string
	CodeSize int
	DataSize int
}

// Storage is the host-supplied storage stub spec.md section 6 requires:
// code memory is read-only ROM content, data memory is the persisted RAM
// image a calculator keeps across power-off. A host that has no save
// slot for DataID at all is expected to zero-fill rather than error.
type Storage interface {
	InitCodeMemory(cfg StorageConfig) ([]byte, Status)
	InitDataMemory(cfg StorageConfig) ([]byte, Status)
	LoadCodeMemory(cfg StorageConfig, buf []byte) Status
	LoadDataMemory(cfg StorageConfig, buf []byte) Status
	SaveDataMemory(cfg StorageConfig, buf []byte) Status
	FreeCodeMemory(buf []byte)
	FreeDataMemory(buf []byte)
}

// FileStorage is a Storage backed by plain host files, CodeID/DataID
// interpreted as filesystem paths. It is the Go-native counterpart of
// the reference implementation's file-based stub: code must exist,
// data is zero-filled when its file is absent.
type FileStorage struct{}

// InitCodeMemory allocates a buffer of cfg.CodeSize and loads it via
// LoadCodeMemory; a missing or short ROM file returns a nil buffer and
// MemROMMissing, since a core cannot run without code memory.
func (FileStorage) InitCodeMemory(cfg StorageConfig) ([]byte, Status) {
	buf := make([]byte, cfg.CodeSize)
	if st := (FileStorage{}).LoadCodeMemory(cfg, buf); st != MemOK {
		return nil, st
	}
	return buf, MemOK
}

// InitDataMemory allocates a buffer of cfg.DataSize and loads it via
// LoadDataMemory, tolerating an absent save file by returning a
// zero-filled buffer.
func (FileStorage) InitDataMemory(cfg StorageConfig) ([]byte, Status) {
	buf := make([]byte, cfg.DataSize)
	if st := (FileStorage{}).LoadDataMemory(cfg, buf); st != MemOK {
		return nil, st
	}
	return buf, MemOK
}

// LoadCodeMemory reads cfg.CodeID into buf. The ROM image must exist and
// be at least len(buf) bytes.
func (FileStorage) LoadCodeMemory(cfg StorageConfig, buf []byte) Status {
	b, err := os.ReadFile(cfg.CodeID)
	if err != nil {
		return MemROMMissing
	}
	if len(b) < len(buf) {
		return MemROMMissing
	}
	copy(buf, b)
	return MemOK
}

// LoadDataMemory reads cfg.DataID into buf, zero-filling buf instead of
// failing when the file does not exist (spec.md section 6: "initData's
// caller tolerates absence of the data image by zero-filling").
func (FileStorage) LoadDataMemory(cfg StorageConfig, buf []byte) Status {
	b, err := os.ReadFile(cfg.DataID)
	if err != nil {
		for i := range buf {
			buf[i] = 0
		}
		return MemOK
	}
	n := copy(buf, b)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return MemOK
}

// SaveDataMemory writes buf to cfg.DataID, the persisted-RAM half of a
// calculator's save state.
func (FileStorage) SaveDataMemory(cfg StorageConfig, buf []byte) Status {
	if err := os.WriteFile(cfg.DataID, buf, 0o644); err != nil {
		return MemSavingFailed
	}
	return MemOK
}

// FreeCodeMemory and FreeDataMemory exist to satisfy the Storage
// interface's parity with spec.md section 6's explicit free hooks; Go's
// garbage collector reclaims the backing slice once it is unreferenced,
// so both are no-ops here.
func (FileStorage) FreeCodeMemory(buf []byte) {}
func (FileStorage) FreeDataMemory(buf []byte) {}
