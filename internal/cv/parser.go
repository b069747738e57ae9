package cv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/google/uuid"
)

type CVParser struct {
	uploadsDir string
}

type ParsedCV struct {
	Filename string
	FileType string
	FileSize int64
	FullText string
}

func NewCVParser(uploadsDir string) *CVParser {
	return &CVParser{
		uploadsDir: uploadsDir,
	}
}

// SupportedType reports whether ParseFile can read files with ext.
func SupportedType(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt":
		return true
	}
	return false
}

// ParseFile extracts text from PDF/DOCX/TXT files. The upload is staged
// in the uploads dir for the converters and removed afterwards.
func (p *CVParser) ParseFile(filename string, data []byte) (*ParsedCV, error) {
	fileType := strings.ToLower(filepath.Ext(filename))
	if !SupportedType(fileType) {
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}

	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	// unique name so concurrent uploads of "cv.pdf" do not collide
	filePath := filepath.Join(p.uploadsDir, uuid.NewString()+fileType)
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	defer os.Remove(filePath)

	var text string
	switch fileType {
	case ".txt":
		text = string(data)
	default:
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		text = res.Body
	}

	return &ParsedCV{
		Filename: filepath.Base(filename),
		FileType: fileType,
		FileSize: int64(len(data)),
		FullText: text,
	}, nil
}
