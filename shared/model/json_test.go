package model_test

import (
	"courtbook/shared/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

type peak struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

func TestJSON_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    []peak
		wantErr bool
	}{
		{
			name: "bytes",
			src:  []byte(`[{"label":"Morning Peak","multiplier":1.3}]`),
			want: []peak{{Label: "Morning Peak", Multiplier: 1.3}},
		},
		{
			name: "string",
			src:  `[{"label":"Evening Peak","multiplier":1.5}]`,
			want: []peak{{Label: "Evening Peak", Multiplier: 1.5}},
		},
		{
			name: "null",
			src:  nil,
			want: nil,
		},
		{
			name:    "unsupported type",
			src:     42,
			wantErr: true,
		},
		{
			name:    "malformed",
			src:     []byte(`{`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var col model.JSON[[]peak]

			err := col.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, col.Val)
		})
	}
}

func TestJSON_Value(t *testing.T) {
	col := model.NewJSON(map[string]bool{"waitlist": true})

	val, err := col.Value()

	assert.NoError(t, err)
	assert.JSONEq(t, `{"waitlist":true}`, val.(string))
}
