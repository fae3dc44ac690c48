package walk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHidden(t *testing.T) {
	root := filepath.FromSlash("/home/user/project")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"root itself", "/home/user/project", false},
		{"plain file", "/home/user/project/main.go", false},
		{"dot file", "/home/user/project/.env", true},
		{"file in hidden dir", "/home/user/project/.git/config", true},
		{"deep under hidden dir", "/home/user/project/.git/refs/heads/main", true},
		{"hidden leaf in visible dir", "/home/user/project/src/.keep", true},
		{"dot in the middle", "/home/user/project/v1.2/notes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHidden(root, filepath.FromSlash(tt.path)))
		})
	}
}

func TestIsHiddenIgnoresRootSegments(t *testing.T) {
	root := filepath.FromSlash("/home/user/.config/app")
	assert.False(t, IsHidden(root, root))
	assert.False(t, IsHidden(root, filepath.Join(root, "settings.yaml")))
	assert.True(t, IsHidden(root, filepath.Join(root, ".cache")))
}

func TestIsHiddenRelativeRoot(t *testing.T) {
	assert.False(t, IsHidden(".", "."))
	assert.False(t, IsHidden(".", "src"))
	assert.True(t, IsHidden(".", ".github"))
	assert.True(t, IsHidden(".", filepath.Join(".github", "workflows", "ci.yml")))
	assert.False(t, IsHidden("..", filepath.Join("..", "sibling")))
}
