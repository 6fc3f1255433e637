package propath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		wantErr bool
	}{
		{
			name:  "single segment",
			input: "user",
			want:  Path{{Name: "user", Pos: Position{Offset: 0, Length: 4}}},
		},
		{
			name:  "nested with index",
			input: "users.0.name",
			want: Path{
				{Name: "users", Pos: Position{Offset: 0, Length: 5}},
				{Name: "0", Pos: Position{Offset: 6, Length: 1}},
				{Name: "name", Pos: Position{Offset: 8, Length: 4}},
			},
		},
		{
			name:  "non identifier names",
			input: "first-name.日本",
			want: Path{
				{Name: "first-name", Pos: Position{Offset: 0, Length: 10}},
				{Name: "日本", Pos: Position{Offset: 11, Length: 2}},
			},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "leading dot",
			input:   ".a",
			wantErr: true,
		},
		{
			name:    "trailing dot",
			input:   "a.",
			wantErr: true,
		},
		{
			name:    "double dot",
			input:   "a..b",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestPathContainer(t *testing.T) {
	container, key := MustParse("a.b.c").Container()
	assert.Equal(t, "a.b", container.String())
	assert.Equal(t, "c", key)

	container, key = MustParse("a").Container()
	assert.Empty(t, container)
	assert.Equal(t, "a", key)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
}
