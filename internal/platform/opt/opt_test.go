package opt

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Accuracy Value[float64] `json:"accuracy"`
	Venue    Value[string]  `json:"venue"`
}

func TestValue_JSON(t *testing.T) {
	t.Parallel()

	raw, err := sonic.Marshal(payload{Accuracy: Present(87.5), Venue: Absent[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"accuracy":87.5,"venue":null}`, string(raw))

	var decoded payload
	require.NoError(t, sonic.Unmarshal([]byte(`{"accuracy":null,"venue":"Anfield"}`), &decoded))
	assert.False(t, decoded.Accuracy.IsPresent())
	venue, ok := decoded.Venue.Get()
	require.True(t, ok)
	assert.Equal(t, "Anfield", venue)
}

func TestValue_Helpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, Absent[int]().OrElse(3))
	assert.Nil(t, Absent[int]().Ptr())

	n := 4
	assert.Equal(t, 4, *FromPtr(&n).Ptr())
	assert.Equal(t, "8", Map(Present(8), func(v int) string { return "8" }).OrElse(""))
	assert.False(t, Map(Absent[int](), func(v int) string { return "x" }).IsPresent())
}
