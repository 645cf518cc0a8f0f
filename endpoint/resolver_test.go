package endpoint

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		origin   string
		want     string
	}{
		{
			name:     "explicit url wins",
			explicit: "https://x.com/api/",
			origin:   "https://foo.vercel.app",
			want:     "https://x.com/api",
		},
		{
			name:   "vercel platform",
			origin: "https://foo.vercel.app",
			want:   "https://foo.vercel.app/api",
		},
		{
			name:   "netlify platform",
			origin: "https://foo.netlify.app",
			want:   "https://foo.netlify.app/.netlify/functions/api",
		},
		{
			name:   "fly platform",
			origin: "https://blog.fly.dev",
			want:   "https://blog.fly.dev/api",
		},
		{
			name:   "custom domain",
			origin: "https://blog.acme.co",
			want:   "https://blog.acme.co/api",
		},
		{
			name:   "localhost with port",
			origin: "http://localhost:3000",
			want:   "http://localhost:3001/api",
		},
		{
			name:   "bare localhost",
			origin: "http://localhost",
			want:   "http://localhost:3001/api",
		},
		{
			name: "no origin falls back to production",
			want: "https://api.quillfeed.com/api",
		},
		{
			name:   "single label host falls back to production",
			origin: "http://intranet",
			want:   "https://api.quillfeed.com/api",
		},
		{
			name:   "trailing slash on origin is ignored",
			origin: "https://foo.vercel.app/",
			want:   "https://foo.vercel.app/api",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.explicit, tc.origin); got != tc.want {
				t.Fatalf("Resolve(%q, %q) = %q, want %q", tc.explicit, tc.origin, got, tc.want)
			}
		})
	}
}
