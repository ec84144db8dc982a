package civitai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexString
	}{
		{"string cursor", `{"nextCursor":"abc123"}`, "abc123"},
		{"numeric cursor", `{"nextCursor":987654}`, "987654"},
		{"null cursor", `{"nextCursor":null}`, ""},
		{"absent cursor", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta MetadataDTO
			require.NoError(t, json.Unmarshal([]byte(tt.in), &meta))
			assert.Equal(t, tt.want, meta.NextCursor)
		})
	}
}

func TestNsfwField_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantFlag  bool
		wantLevel string
	}{
		{"boolean true", `{"nsfw":true}`, true, ""},
		{"boolean false", `{"nsfw":false}`, false, ""},
		{"level string", `{"nsfw":"Mature"}`, true, "Mature"},
		{"none string", `{"nsfw":"None"}`, false, "None"},
		{"null", `{"nsfw":null}`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var img ImageDTO
			require.NoError(t, json.Unmarshal([]byte(tt.in), &img))
			assert.Equal(t, tt.wantFlag, img.Nsfw.Flag)
			assert.Equal(t, tt.wantLevel, img.Nsfw.Level)
		})
	}
}

func TestImageDTO_NumericNsfwLevel(t *testing.T) {
	var img ImageDTO
	require.NoError(t, json.Unmarshal([]byte(`{"nsfwLevel":4}`), &img))
	assert.Equal(t, FlexString("4"), img.NsfwLevel)
}

func TestImageMetaDTO_CapitalizedKeys(t *testing.T) {
	payload := `{"prompt":"a cat","Model":"sd-1.5","Size":"512x768"}`

	var meta ImageMetaDTO
	require.NoError(t, json.Unmarshal([]byte(payload), &meta))
	assert.Equal(t, "a cat", meta.Prompt)
	assert.Equal(t, "sd-1.5", meta.Model)
	assert.Equal(t, "512x768", meta.Size)
}

func TestModelDTO_UnknownFieldsIgnored(t *testing.T) {
	payload := `{"id":1,"name":"X","somethingNew":{"deep":true},"stats":{"downloadCount":5}}`

	var dto ModelDTO
	require.NoError(t, json.Unmarshal([]byte(payload), &dto))
	assert.Equal(t, int64(1), dto.ID)
	assert.Equal(t, int64(5), dto.Stats.DownloadCount)
}

func TestModelFileDTO_Hashes(t *testing.T) {
	payload := `{"id":1,"name":"model.safetensors","hashes":{"SHA256":"DEADBEEF","AutoV2":"1234"}}`

	var dto ModelFileDTO
	require.NoError(t, json.Unmarshal([]byte(payload), &dto))
	assert.Equal(t, "DEADBEEF", dto.Hashes["SHA256"])
}
