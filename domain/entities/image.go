package entities

// ImageRequest asks a model to describe one image.
// Data and Path are mutually exclusive.
type ImageRequest struct {
	Prompt   string `json:"prompt,omitempty"`
	Data     []byte `json:"-"`
	Path     string `json:"path,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// InlineImage is image bytes ready to be sent to a model
type InlineImage struct {
	Data     []byte
	MimeType string
}

// ImageDescription holds the decoded model answer
type ImageDescription struct {
	Raw  string         `json:"raw"`
	Data map[string]any `json:"data"`
}
