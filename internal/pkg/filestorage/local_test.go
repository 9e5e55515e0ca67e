package filestorage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativePathPreservesSubdirectory(t *testing.T) {
	ls := &LocalStorage{basePath: "uploads", baseURL: "http://localhost:8080/uploads"}

	assert.Equal(t, "documents/a1b2.pdf", ls.relativePath("http://localhost:8080/uploads/documents/a1b2.pdf"))
	assert.Equal(t, "resumes/cv.pdf", ls.relativePath("uploads/resumes/cv.pdf"))
	assert.Equal(t, "cv.pdf", ls.relativePath("uploads/cv.pdf"))
	assert.Equal(t, "", ls.relativePath("uploads/../etc/passwd"))
}

func TestGetFullPath(t *testing.T) {
	ls := &LocalStorage{basePath: "uploads"}

	assert.Equal(t, filepath.Join("uploads", "documents", "a1b2.pdf"), ls.GetFullPath("uploads/documents/a1b2.pdf"))
	assert.Equal(t, "", ls.GetFullPath(""))
}
