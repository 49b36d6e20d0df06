package mailer

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultAttachmentName is used when a path has no file-name component.
	DefaultAttachmentName = "attachment"

	// AttachmentContentType is the content type of every file attachment.
	AttachmentContentType = "application/octet-stream"
)

// Attachment represents an email attachment.
type Attachment struct {
	Path        string // Source path on disk
	Filename    string // Display name for the attachment
	ContentType string // MIME type, always AttachmentContentType for files
	Content     []byte // Raw file content
}

// LoadAttachment reads the whole file at path into memory.
func LoadAttachment(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: %s: %w", ErrAttachment, path, err)
	}
	return Attachment{
		Path:        path,
		Filename:    attachmentName(path),
		ContentType: AttachmentContentType,
		Content:     data,
	}, nil
}

// attachmentName returns the final path segment, falling back to DefaultAttachmentName.
func attachmentName(path string) string {
	base := filepath.Base(path)
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return DefaultAttachmentName
	}
	return base
}

// loadAttachments reads every path in order. Nothing is returned on failure.
func loadAttachments(paths []string) ([]Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	out := make([]Attachment, 0, len(paths))
	for _, p := range paths {
		a, err := LoadAttachment(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
