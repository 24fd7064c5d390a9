package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

var imageBytes = []byte("not-really-a-jpeg")

func encodedImage() string {
	return base64.StdEncoding.EncodeToString(imageBytes)
}

func TestSaveImageDefaultFilename(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveImage(encodedImage(), "", filepath.Join(dir, "img-123"), "jpeg")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if want := filepath.Join(dir, "img-123.jpeg"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != string(imageBytes) {
		t.Errorf("written data = %q, want %q", data, imageBytes)
	}
}

func TestSaveImageUserPath(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cat.png")

	path, err := SaveImage(encodedImage(), out, "ignored-id", "jpeg")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if path != out {
		t.Errorf("path = %q, want %q", path, out)
	}
}

func TestSaveImageCollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cat.png")
	if err := os.WriteFile(out, []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := SaveImage(encodedImage(), out, "", "png")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if want := filepath.Join(dir, "cat_1.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	// a second collision moves on to _2, the original is never overwritten
	path, err = SaveImage(encodedImage(), out, "", "png")
	if err != nil {
		t.Fatalf("SaveImage error: %v", err)
	}
	if want := filepath.Join(dir, "cat_2.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	original, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(original) != "existing" {
		t.Errorf("original file was overwritten: %q", original)
	}
}

func TestSaveImageBadBase64(t *testing.T) {
	dir := t.TempDir()

	if _, err := SaveImage("%%%not-base64%%%", filepath.Join(dir, "x.jpeg"), "", "jpeg"); err == nil {
		t.Fatal("expected decode error, got nil")
	}
	if _, err := os.Stat(filepath.Join(dir, "x.jpeg")); !os.IsNotExist(err) {
		t.Error("no file should be written on decode failure")
	}
}

func TestSaveImageWriteFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveImage(encodedImage(), filepath.Join(dir, "missing", "x.jpeg"), "", "jpeg")
	if err == nil {
		t.Fatal("expected write error, got nil")
	}
}

func TestSaveImagePathThroughFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("plain file"), 0644); err != nil {
		t.Fatal(err)
	}

	// stat on a path below a regular file fails with ENOTDIR, which is not
	// a collision; the write must fail instead of suffixing forever
	_, err := SaveImage(encodedImage(), filepath.Join(blocker, "x.jpeg"), "", "jpeg")
	if err == nil {
		t.Fatal("expected write error, got nil")
	}
}
