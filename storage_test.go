package u8core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorageLoadCodeMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.bin")
	rom := []byte{0x01, 0x02, 0x03, 0x04}
	if err := os.WriteFile(path, rom, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := StorageConfig{CodeID: path, CodeSize: len(rom)}
	buf, st := FileStorage{}.InitCodeMemory(cfg)
	if st != MemOK {
		t.Fatalf("status = %v, want OK", st)
	}
	for i, b := range rom {
		if buf[i] != b {
			t.Errorf("buf[%d] = %#x, want %#x", i, buf[i], b)
		}
	}
}

func TestFileStorageLoadCodeMemoryMissingIsROMMissing(t *testing.T) {
	cfg := StorageConfig{CodeID: filepath.Join(t.TempDir(), "absent.bin"), CodeSize: 16}
	if _, st := (FileStorage{}).InitCodeMemory(cfg); st != MemROMMissing {
		t.Errorf("status = %v, want MemROMMissing", st)
	}
}

func TestFileStorageLoadDataMemoryZeroFillsWhenAbsent(t *testing.T) {
	cfg := StorageConfig{DataID: filepath.Join(t.TempDir(), "save.bin"), DataSize: 8}
	buf, st := FileStorage{}.InitDataMemory(cfg)
	if st != MemOK {
		t.Fatalf("status = %v, want OK", st)
	}
	for i, b := range buf {
		if b != 0 {
			t.Errorf("buf[%d] = %#x, want 0", i, b)
		}
	}
}

func TestFileStorageSaveThenLoadDataMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.bin")
	cfg := StorageConfig{DataID: path, DataSize: 4}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if st := (FileStorage{}).SaveDataMemory(cfg, want); st != MemOK {
		t.Fatalf("SaveDataMemory status = %v, want OK", st)
	}

	buf, st := FileStorage{}.InitDataMemory(cfg)
	if st != MemOK {
		t.Fatalf("InitDataMemory status = %v, want OK", st)
	}
	for i, b := range want {
		if buf[i] != b {
			t.Errorf("buf[%d] = %#x, want %#x", i, buf[i], b)
		}
	}
}
