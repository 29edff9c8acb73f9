package snapshot

import "testing"

func TestParseArtifact(t *testing.T) {
	tests := []struct {
		in       string
		wantBase string
		wantName string
		wantErr  bool
	}{
		{
			in:       "https://restore-abc.mongodb.net:27017/fb1f3d/restore-5f0e.tar.gz",
			wantBase: "https://restore-abc.mongodb.net:27017/fb1f3d/",
			wantName: "restore-5f0e.tar.gz",
		},
		{in: "http://host/file", wantBase: "http://host/", wantName: "file"},
		{in: "https://host/dir/", wantErr: true},
		{in: "ftp://host/file", wantErr: true},
		{in: "file", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := ParseArtifact(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", a)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArtifact: %v", err)
			}
			if a.BaseURL != tt.wantBase || a.Name != tt.wantName {
				t.Fatalf("got %+v", a)
			}
			if a.URL() != tt.in {
				t.Fatalf("URL() = %q, want %q", a.URL(), tt.in)
			}
		})
	}
}
