package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	commonerrors "github.com/AlibekovAA/exercise-tracker/internal/common/errors"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/coerce"
)

func newBodyRequest(contentType, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestReadBody(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		body        string
		key         string
		want        any
	}{
		{"json string", "application/json", `{"username":"alice"}`, "username", "alice"},
		{"json number", "application/json; charset=utf-8", `{"duration":30}`, "duration", float64(30)},
		{"json null", "application/json", `{"date":null}`, "date", nil},
		{"json array body", "application/json", `["alice"]`, "username", coerce.Undefined},
		{"empty json body", "application/json", ``, "username", coerce.Undefined},
		{"vendor json", "application/vnd.api+json", `{"username":"bob"}`, "username", "bob"},
		{"form single", "application/x-www-form-urlencoded", `username=carol`, "username", "carol"},
		{"form absent", "application/x-www-form-urlencoded", `username=carol`, "date", coerce.Undefined},
		{"plain text ignored", "text/plain", `username=dave`, "username", coerce.Undefined},
		{"no content type", "", `{"username":"erin"}`, "username", coerce.Undefined},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := readBody(newBodyRequest(tc.contentType, tc.body))
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got := f.get(tc.key); got != tc.want {
				t.Errorf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestReadBody_RepeatedFormKey(t *testing.T) {
	f, err := readBody(newBodyRequest("application/x-www-form-urlencoded", "a=1&a=2"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	list, ok := f.get("a").([]any)
	if !ok || len(list) != 2 || list[0] != "1" || list[1] != "2" {
		t.Errorf("expected [1 2], got %#v", f.get("a"))
	}
	if f.text("a") != "1,2" {
		t.Errorf("expected joined text, got %q", f.text("a"))
	}
}

func TestReadBody_Errors(t *testing.T) {
	_, err := readBody(newBodyRequest("application/json", `{"a":`))
	if !errors.Is(err, commonerrors.ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}

	_, err = readBody(newBodyRequest("application/x-www-form-urlencoded", `a=%zz`))
	if !errors.Is(err, commonerrors.ErrInvalidForm) {
		t.Errorf("expected ErrInvalidForm, got %v", err)
	}
}
