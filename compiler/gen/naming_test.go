package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	tests := []struct{ in, out string }{
		{"arg", "Arg"},
		{"Arg", "Arg"},
		{"current_dir", "CurrentDir"},
		{"currentDir", "CurrentDir"},
		{"URL", "URL"},
		{"env_var", "EnvVar"},
		{"httpCode", "HttpCode"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, pascal(tt.in), "pascal(%q)", tt.in)
	}
}

func TestBuilderField(t *testing.T) {
	tests := []struct{ in, out string }{
		{"Executable", "executable"},
		{"work_dir", "workDir"},
		{"Type", "_type"},
		{"Range", "_range"},
		{"String", "_string"},
		{"Len", "_len"},
		{"ID", "iD"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, builderField(tt.in), "builderField(%q)", tt.in)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct{ in, out string }{
		{"Command", "command"},
		{"UserInfo", "user_info"},
		{"HTTPCode", "http_code"},
		{"OAuth2Token", "o_auth2_token"},
		{"ID", "id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, label(tt.in), "label(%q)", tt.in)
	}
}
