package ai

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"account_connector/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response string
	err      error

	calls  int
	prompt string
	image  *entities.InlineImage
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string, image *entities.InlineImage) (string, error) {
	f.calls++
	f.prompt = prompt
	f.image = image
	return f.response, f.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestDescriber_DescribeData(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"description\":\"logo\"}\n```"}
	d := NewDescriber(gen, quietLogger())

	desc, err := d.Describe(context.Background(), entities.ImageRequest{
		Data:     pngHeader,
		MimeType: "image/png",
	})
	require.NoError(t, err)

	assert.Equal(t, "logo", desc.Data["description"])
	assert.Equal(t, DefaultPrompt, gen.prompt)
	require.NotNil(t, gen.image)
	assert.Equal(t, "image/png", gen.image.MimeType)
	assert.Equal(t, pngHeader, gen.image.Data)
}

func TestDescriber_DescribePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0644))

	gen := &fakeGenerator{response: "```json\n{\"description\":\"screen\"}\n```"}
	d := NewDescriber(gen, quietLogger())

	desc, err := d.Describe(context.Background(), entities.ImageRequest{
		Prompt: "what is this?",
		Path:   path,
	})
	require.NoError(t, err)

	assert.Equal(t, "screen", desc.Data["description"])
	assert.Equal(t, "what is this?", gen.prompt)
	assert.Equal(t, "image/png", gen.image.MimeType)
}

func TestDescriber_CustomDefaultPrompt(t *testing.T) {
	gen := &fakeGenerator{response: `{}`}
	d := NewDescriber(gen, quietLogger()).WithPrompt("describe briefly")

	_, err := d.Describe(context.Background(), entities.ImageRequest{Data: pngHeader})
	require.NoError(t, err)
	assert.Equal(t, "describe briefly", gen.prompt)
	assert.Equal(t, "image/png", gen.image.MimeType)
}

func TestDescriber_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  entities.ImageRequest
		want error
	}{
		{"no image", entities.ImageRequest{Prompt: "hi"}, entities.ErrNoImage},
		{"empty", entities.ImageRequest{}, entities.ErrNoImage},
		{"both", entities.ImageRequest{Data: pngHeader, Path: "x.png", MimeType: "image/png"}, entities.ErrAmbiguousImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			d := NewDescriber(gen, quietLogger())

			_, err := d.Describe(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, gen.calls)
		})
	}
}

func TestDescriber_MissingFile(t *testing.T) {
	gen := &fakeGenerator{}
	d := NewDescriber(gen, quietLogger())

	_, err := d.Describe(context.Background(), entities.ImageRequest{
		Path: filepath.Join(t.TempDir(), "missing.png"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, gen.calls)
}

func TestDescriber_MalformedResponsePropagates(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot describe this image."}
	d := NewDescriber(gen, quietLogger())

	_, err := d.Describe(context.Background(), entities.ImageRequest{Data: pngHeader, MimeType: "image/png"})

	var parseErr *entities.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "I cannot describe this image.", parseErr.Payload)
}

func TestDescriber_GeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := &fakeGenerator{err: boom}
	d := NewDescriber(gen, quietLogger())

	_, err := d.Describe(context.Background(), entities.ImageRequest{Data: pngHeader, MimeType: "image/png"})
	assert.ErrorIs(t, err, boom)
}
