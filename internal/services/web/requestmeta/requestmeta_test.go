package requestmeta

import (
	"net/http/httptest"
	"testing"
)

func TestHasSameOriginProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		host    string
		origin  string
		referer string
		want    bool
	}{
		{
			name:   "matching origin",
			host:   "argus.example",
			origin: "http://argus.example",
			want:   true,
		},
		{
			name:   "matching origin with explicit port",
			host:   "argus.example:8080",
			origin: "http://argus.example:8080",
			want:   true,
		},
		{
			name:   "foreign origin",
			host:   "argus.example",
			origin: "http://evil.example",
			want:   false,
		},
		{
			name:   "port mismatch",
			host:   "argus.example:8080",
			origin: "http://argus.example",
			want:   false,
		},
		{
			name:    "referer fallback",
			host:    "argus.example",
			referer: "http://argus.example/admin/software",
			want:    true,
		},
		{
			name: "no proof headers",
			host: "argus.example",
			want: false,
		},
		{
			name:    "origin wins over referer",
			host:    "argus.example",
			origin:  "http://evil.example",
			referer: "http://argus.example/admin/software",
			want:    false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("POST", "http://"+tc.host+"/admin/software", nil)
			req.Host = tc.host
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := HasSameOriginProof(req); got != tc.want {
				t.Fatalf("HasSameOriginProof = %v, want %v", got, tc.want)
			}
		})
	}
}
