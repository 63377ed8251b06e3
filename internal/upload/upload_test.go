package upload

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"chair.png", true},
		{"CHAIR.PNG", true},
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"anim.gif", true},
		{"doc.pdf", false},
		{"script.png.exe", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.allowed, AllowedFile(tt.filename), "filename=%q", tt.filename)
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chair.png", "chair.png"},
		{"my photo.png", "my_photo.png"},
		{"../../etc/passwd.png", "passwd.png"},
		{"..evil.png", "evil.png"},
		{"über.gif", "ber.gif"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SecureFilename(tt.in), "in=%q", tt.in)
	}
}

func TestStoreAccept(t *testing.T) {
	s := NewStore("static/uploads", "/static")

	clean, err := s.Accept("Chair.PNG")
	require.NoError(t, err)
	require.Equal(t, "Chair.PNG", clean)

	_, err = s.Accept("malware.exe")
	require.ErrorIs(t, err, ErrDisallowedType)

	_, err = s.Accept("")
	require.ErrorIs(t, err, ErrDisallowedType)

	// sanitization must not be able to launder a disallowed name into
	// an allowed one
	_, err = s.Accept("x.png/../../y")
	require.ErrorIs(t, err, ErrDisallowedType)
}

func TestStorePaths(t *testing.T) {
	s := NewStore("static/uploads", "/static")

	require.Equal(t, filepath.Join("static", "uploads", "chair.png"), s.DestPath("chair.png"))
	require.Equal(t, "uploads/chair.png", s.RelativePath("chair.png"))
	require.Equal(t, "/static/uploads/chair.png", s.ServeURL("uploads/chair.png"))
}
