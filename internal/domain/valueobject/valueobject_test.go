package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
)

func TestNewUsername(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "lowercase", raw: "johndoe", want: "johndoe"},
		{name: "mixed case is folded", raw: "JohnDoe_99", want: "johndoe_99"},
		{name: "minimum length", raw: "abc", want: "abc"},
		{name: "maximum length", raw: strings.Repeat("a", 50), want: strings.Repeat("a", 50)},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
		{name: "too short", raw: "ab", wantErr: true},
		{name: "too long", raw: strings.Repeat("a", 51), wantErr: true},
		{name: "dash", raw: "john-doe", wantErr: true},
		{name: "space", raw: "john doe", wantErr: true},
		{name: "non ascii", raw: "jöhn", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewUsername(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value())
		})
	}
}

func TestUsername_ValidAlphabetAlwaysFoldsToLower(t *testing.T) {
	alphabet := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"
	for size := 3; size <= 50; size++ {
		var b strings.Builder
		for i := 0; i < size; i++ {
			b.WriteByte(alphabet[(i*7+size)%len(alphabet)])
		}
		raw := b.String()
		u, err := NewUsername(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, strings.ToLower(raw), u.Value())
	}
}

func TestUsername_Equality(t *testing.T) {
	a, err := NewUsername("Alice")
	require.NoError(t, err)
	b, err := NewUsername("alice")
	require.NoError(t, err)
	assert.True(t, a.Equals(b))
	assert.Equal(t, a, b)
}

func TestNewPassword(t *testing.T) {
	_, err := NewPassword("")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewPassword("12345")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewPassword(strings.Repeat("x", 101))
	assert.ErrorIs(t, err, domain.ErrValidation)

	p, err := NewPassword("secret1")
	require.NoError(t, err)
	assert.Equal(t, "secret1", p.Value())
	assert.Equal(t, "[REDACTED]", p.String())
}

func TestNewName(t *testing.T) {
	n, err := NewName("  Mary Ann ")
	require.NoError(t, err)
	assert.Equal(t, "Mary Ann", n.Value())

	for _, raw := range []string{"", "  ", "J", " a", "b  ", "J0hn", "O'Neil", strings.Repeat("a", 101)} {
		_, err := NewName(raw)
		assert.ErrorIs(t, err, domain.ErrValidation, raw)
	}

	// length is measured on the trimmed value
	n, err = NewName(" " + strings.Repeat("a", 100) + " ")
	require.NoError(t, err)
	assert.Len(t, n.Value(), 100)
}

func TestNewFullName(t *testing.T) {
	fn, err := NewFullName("John", "Doe")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", fn.String())
	assert.Equal(t, "John", fn.FirstName().Value())
	assert.Equal(t, "Doe", fn.LastName().Value())

	_, err = NewFullName("John", "D")
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "lastName", de.Details["field"])
}

func TestNewRole(t *testing.T) {
	for _, r := range Roles {
		got, err := NewRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := NewRole("superuser")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = NewRole("Admin")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
