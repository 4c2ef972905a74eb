package consultation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// AnswerSource supplies the answers for one consultation.
type AnswerSource interface {
	Collect(ctx context.Context) (Request, error)
}

// StaticSource returns a request that was already decoded, e.g. from an HTTP
// body.
type StaticSource Request

func (s StaticSource) Collect(context.Context) (Request, error) {
	return Request(s), nil
}

// FileSource reads a YAML intake file. JSON files parse too since JSON is
// valid YAML.
type FileSource struct {
	Path string
}

func (f FileSource) Collect(ctx context.Context) (Request, error) {
	if err := ctx.Err(); err != nil {
		return Request{}, err
	}
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return Request{}, fmt.Errorf("read intake file: %w", err)
	}
	return DecodeRequest(bytes.NewReader(raw))
}

// DecodeRequest parses a YAML document into a Request. Unknown keys are
// rejected so a misspelt screening answer is not silently read as false.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return Request{}, fmt.Errorf("decode intake: empty document")
		}
		return Request{}, fmt.Errorf("decode intake: %w", err)
	}
	return req, nil
}
