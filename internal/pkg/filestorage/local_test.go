package filestorage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T, baseURL string) *LocalStorage {
	t.Helper()
	storage, err := NewLocalStorage(t.TempDir(), baseURL)
	if err != nil {
		t.Fatal(err)
	}
	return storage
}

func TestSaveWritesFileToBucket(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/files")
	if err != nil {
		t.Fatal(err)
	}
	if err := storage.EnsureBucket("avatars", true); err != nil {
		t.Fatal(err)
	}

	stored, err := storage.Save("avatars", "user-1-me.png", []byte("fake image"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if stored.Size != int64(len("fake image")) {
		t.Errorf("unexpected size %d", stored.Size)
	}
	if stored.Path != "avatars/user-1-me.png" {
		t.Errorf("unexpected path %q", stored.Path)
	}

	content, err := os.ReadFile(filepath.Join(dir, "avatars", "user-1-me.png"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(content) != "fake image" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestSaveCreatesOwnerSubdirectories(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/files")
	if err != nil {
		t.Fatal(err)
	}
	if err := storage.EnsureBucket("avatars", true); err != nil {
		t.Fatal(err)
	}

	stored, err := storage.Save("avatars", "user-1/me.png", []byte("fake image"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if stored.Path != "avatars/user-1/me.png" {
		t.Errorf("unexpected path %q", stored.Path)
	}
	if _, err := os.Stat(filepath.Join(dir, "avatars", "user-1", "me.png")); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestURLDependsOnBucketVisibility(t *testing.T) {
	storage := newTestStorage(t, "http://localhost:8080/files")
	if err := storage.EnsureBucket("avatars", true); err != nil {
		t.Fatal(err)
	}
	if err := storage.EnsureBucket("payment-proofs", false); err != nil {
		t.Fatal(err)
	}

	publicURL := storage.URL("avatars", "a.png")
	if publicURL != "http://localhost:8080/files/avatars/a.png" {
		t.Errorf("unexpected public URL %q", publicURL)
	}

	privateURL := storage.URL("payment-proofs", "b.pdf")
	if privateURL == publicURL || privateURL == "" {
		t.Errorf("unexpected private URL %q", privateURL)
	}
}

func TestDeleteToleratesMissingFile(t *testing.T) {
	storage := newTestStorage(t, "")
	if err := storage.EnsureBucket("avatars", true); err != nil {
		t.Fatal(err)
	}
	if err := storage.Delete("avatars", "never-existed.png"); err != nil {
		t.Errorf("deleting a missing file must not fail: %v", err)
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	storage := newTestStorage(t, "")
	if err := storage.EnsureBucket("avatars", true); err != nil {
		t.Fatal(err)
	}
	if _, err := storage.Save("avatars", "gone.png", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := storage.Delete("avatars", "gone.png"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := storage.Save("avatars", "gone.png", []byte("y")); err != nil {
		t.Fatalf("bucket unusable after delete: %v", err)
	}
}
