package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/api/users", "/api/users"},
		{"/api/users/12/logs", "/api/users/{param}/logs"},
		{"/api/users/7/exercises", "/api/users/{param}/exercises"},
		{"/api/users/3f2504e0-4f89-11d3-9a0c-0305e82c3301/logs", "/api/users/{param}/logs"},
		{"/api/users/abc/logs", "/api/users/abc/logs"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			if got := NormalizePath(tc.in); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
