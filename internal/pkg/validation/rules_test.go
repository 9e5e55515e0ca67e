package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedDocument(t *testing.T) {
	allowed := []string{"cv.pdf", "resume.doc", "transcript.docx", "CV.PDF", "report.DocX"}
	for _, name := range allowed {
		assert.True(t, IsAllowedDocument(name), "%s should be accepted", name)
	}

	rejected := []string{"photo.png", "archive.zip", "script.sh", "resume", "resume.pdf.exe"}
	for _, name := range rejected {
		assert.False(t, IsAllowedDocument(name), "%s should be rejected", name)
	}
}
