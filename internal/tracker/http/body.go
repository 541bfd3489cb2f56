package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	commonerrors "github.com/AlibekovAA/exercise-tracker/internal/common/errors"
	commonhttp "github.com/AlibekovAA/exercise-tracker/internal/common/http"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/coerce"
)

// fields holds raw request values keyed by name. Repeated form or query
// keys become []any, single values stay strings.
type fields map[string]any

func (f fields) get(key string) any {
	v, ok := f[key]
	if !ok {
		return coerce.Undefined
	}
	return v
}

func (f fields) text(key string) string {
	return coerce.ToString(f.get(key))
}

// readBody accepts JSON objects and URL-encoded forms. Any other content
// type, an empty body or a JSON value that is not an object yields no fields.
func readBody(r *http.Request) (fields, error) {
	if r.Body == nil {
		return fields{}, nil
	}
	defer r.Body.Close()

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return fields{}, nil
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return readJSON(r.Body)
	case mediaType == "application/x-www-form-urlencoded":
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read form body: %w", err)
		}
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, commonerrors.ErrInvalidForm.WithCause(err)
		}
		return fromValues(values), nil
	default:
		return fields{}, nil
	}
}

func readJSON(body io.Reader) (fields, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read json body: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return fields{}, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, commonerrors.ErrInvalidJSON.WithCause(err)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return fields{}, nil
	}
	return fields(obj), nil
}

func fromValues(values url.Values) fields {
	out := make(fields, len(values))
	for key, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			out[key] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			out[key] = list
		}
	}
	return out
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.Is(err, commonhttp.ErrBodyTooLarge) || errors.As(err, &maxErr)
}
