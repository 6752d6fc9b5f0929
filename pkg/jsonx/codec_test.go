package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{
			name:  "simple struct",
			input: person{Name: "test", Age: 30},
			want:  `{"name":"test","age":30}`,
		},
		{
			name:  "string",
			input: "hello",
			want:  `"hello"`,
		},
		{
			name:    "invalid input",
			input:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		got, err := Decode[person](`{"name":"test","age":30}`)
		require.NoError(t, err)
		assert.Equal(t, person{Name: "test", Age: 30}, got)
	})

	t.Run("dynamic", func(t *testing.T) {
		got, err := Decode[map[string]any](`{"age":30}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"age": float64(30)}, got)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := Decode[person](`{"name":`)
		assert.Error(t, err)
	})
}
