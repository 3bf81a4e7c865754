package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWireCamelizesNestedKeys(t *testing.T) {
	type inner struct {
		FullName string `json:"full_name"`
	}
	type outer struct {
		ReleaseTitle string  `json:"release_title"`
		Authors      []inner `json:"authors"`
	}

	out, err := ToWire(outer{
		ReleaseTitle: "Album",
		Authors:      []inner{{FullName: "Иванов Иван"}},
	})
	require.NoError(t, err)

	m, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Album", m["releaseTitle"])

	authors, ok := m["authors"].([]any)
	require.True(t, ok)
	assert.Equal(t, "Иванов Иван", authors[0].(map[string]any)["fullName"])
}

func TestFromWireSnakifiesKeys(t *testing.T) {
	var dst struct {
		ReleaseTitle string `json:"release_title"`
		TrackCount   int    `json:"track_count"`
	}

	body := []byte(`{"releaseTitle": "Album", "trackCount": 3}`)
	require.NoError(t, FromWire(body, &dst))
	assert.Equal(t, "Album", dst.ReleaseTitle)
	assert.Equal(t, 3, dst.TrackCount)
}

func TestRenameLeavesValuesAlone(t *testing.T) {
	in := map[string]any{"some_key": []any{"snake_value_untouched", map[string]any{"inner_key": 1.0}}}
	out := CamelizeKeys(in).(map[string]any)

	list := out["someKey"].([]any)
	assert.Equal(t, "snake_value_untouched", list[0])
	assert.Contains(t, list[1].(map[string]any), "innerKey")
}
