package ai

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"account_connector/domain/entities"
	"account_connector/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// DefaultPrompt is sent when a request carries no prompt of its own.
const DefaultPrompt = `Décris cette image. Réponds uniquement avec un objet JSON dans un bloc de code json, ` +
	`avec les clés "description" (texte), "objects" (liste de textes) et "text" (texte visible dans l'image, vide si aucun).`

// Describer asks a model to describe images
type Describer struct {
	generator interfaces.ContentGenerator
	logger    *logrus.Logger
	prompt    string
}

// NewDescriber - builds a describer around an explicit generator
func NewDescriber(generator interfaces.ContentGenerator, logger *logrus.Logger) *Describer {
	return &Describer{
		generator: generator,
		logger:    logger,
		prompt:    DefaultPrompt,
	}
}

// WithPrompt - overrides the default prompt
func (d *Describer) WithPrompt(prompt string) *Describer {
	if prompt != "" {
		d.prompt = prompt
	}
	return d
}

// Describe - sends the image and decodes the fenced JSON answer
func (d *Describer) Describe(ctx context.Context, req entities.ImageRequest) (*entities.ImageDescription, error) {
	image, err := resolveImage(req)
	if err != nil {
		return nil, err
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = d.prompt
	}

	d.logger.WithFields(logrus.Fields{
		"mime_type": image.MimeType,
		"bytes":     len(image.Data),
		"path":      req.Path,
	}).Info("Requesting image description")

	text, err := d.generator.GenerateContent(ctx, prompt, image)
	if err != nil {
		return nil, fmt.Errorf("failed to describe image: %w", err)
	}

	data := make(map[string]any)
	if err := DecodeFencedJSON(text, &data); err != nil {
		return nil, err
	}

	return &entities.ImageDescription{Raw: text, Data: data}, nil
}

// LoadImage - reads an image file and infers its MIME type when mimeType is empty
func LoadImage(path, mimeType string) (*entities.InlineImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if mimeType == "" {
		mimeType = detectMimeType(path, data)
	}
	return &entities.InlineImage{Data: data, MimeType: mimeType}, nil
}

func resolveImage(req entities.ImageRequest) (*entities.InlineImage, error) {
	hasData := len(req.Data) > 0
	hasPath := req.Path != ""

	switch {
	case hasData && hasPath:
		return nil, entities.ErrAmbiguousImage
	case hasPath:
		return LoadImage(req.Path, req.MimeType)
	case hasData:
		mimeType := req.MimeType
		if mimeType == "" {
			mimeType = http.DetectContentType(req.Data)
		}
		return &entities.InlineImage{Data: req.Data, MimeType: mimeType}, nil
	default:
		return nil, entities.ErrNoImage
	}
}

func detectMimeType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}
