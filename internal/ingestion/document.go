package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/fitscore/internal/types"
)

// ErrEmptyDocument is returned when a file holds no text after cleaning.
var ErrEmptyDocument = errors.New("document is empty")

// Metadata describes an ingested document.
type Metadata struct {
	Path   string `json:"path"`
	Format string `json:"format"` // text or html
	Hash   string `json:"hash"`   // SHA256 hex digest of the cleaned text
	Chars  int    `json:"chars"`
}

// ReadDocument reads a resume or job description from disk. Files ending in .html or .htm are
// converted to text; anything else is read as plain text. Both are cleaned with CleanText.
func ReadDocument(path string, docType types.DocumentType) (*types.Document, *Metadata, error) {
	if !docType.Valid() {
		return nil, nil, fmt.Errorf("unknown document type %q", docType)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := "text"
	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		format = "html"
		text, err = HTMLToText(string(content))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
	default:
		text = CleanText(string(content))
	}

	if text == "" {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyDocument)
	}

	return &types.Document{Text: text, Type: docType}, &Metadata{
		Path:   path,
		Format: format,
		Hash:   computeHash(text),
		Chars:  len([]rune(text)),
	}, nil
}

// ReadOptionalDocument is ReadDocument for an optional flag: an empty path yields empty text.
func ReadOptionalDocument(path string, docType types.DocumentType) (string, error) {
	if path == "" {
		return "", nil
	}
	doc, _, err := ReadDocument(path, docType)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
