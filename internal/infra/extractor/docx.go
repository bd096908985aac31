package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// wordprocessingML is the main WordprocessingML namespace.
const wordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DOCX extracts paragraph text from Office Open XML word documents.
type DOCX struct{}

// NewDOCX creates a new DOCX extractor.
func NewDOCX() *DOCX {
	return &DOCX{}
}

// SupportedFormats implements Extractor.
func (e *DOCX) SupportedFormats() []string {
	return []string{"docx"}
}

// Extract implements Extractor. Run text, tabs and breaks inside each
// paragraph are kept; empty paragraphs are dropped.
func (e *DOCX) Extract(ctx context.Context, r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var body *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("open docx: word/document.xml not found")
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("open docx body: %w", err)
	}
	defer func() { _ = rc.Close() }()

	paragraphs, err := readParagraphs(ctx, rc)
	if err != nil {
		return "", err
	}
	return joinParagraphs(paragraphs), nil
}

// readParagraphs streams document.xml and collects the text of each w:p.
func readParagraphs(ctx context.Context, r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordprocessingML {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordprocessingML {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
					if err := ctx.Err(); err != nil {
						return nil, err
					}
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
