package talon

import (
	"errors"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/casualjim/talon/pkg/uuidx"
)

func TestFailureJSON(t *testing.T) {
	invocationID := uuidx.New()
	timestamp := strfmt.DateTime(time.Now().UTC().Truncate(time.Millisecond))
	failure := Failure{
		InvocationID: invocationID,
		Hook:         "checkout.fees",
		Owner:        "shipping",
		Err:          errors.New("boom"),
		Timestamp:    timestamp,
	}

	t.Run("marshal", func(t *testing.T) {
		data, err := failure.MarshalJSON()
		require.NoError(t, err)

		result := gjson.ParseBytes(data)
		assert.Equal(t, "failure", result.Get("type").String())
		assert.Equal(t, invocationID.String(), result.Get("invocation_id").String())
		assert.Equal(t, "checkout.fees", result.Get("hook").String())
		assert.Equal(t, "shipping", result.Get("owner").String())
		assert.Equal(t, "boom", result.Get("error").String())
		assert.Equal(t, timestamp.String(), result.Get("timestamp").String())
	})

	t.Run("unmarshal", func(t *testing.T) {
		input := []byte(`{
			"type": "failure",
			"invocation_id": "` + invocationID.String() + `",
			"hook": "checkout.fees",
			"owner": "shipping",
			"error": "boom",
			"timestamp": "` + timestamp.String() + `"
		}`)

		var f Failure
		err := f.UnmarshalJSON(input)
		require.NoError(t, err)
		assert.Equal(t, failure, f)
	})

	t.Run("round trip", func(t *testing.T) {
		data, err := failure.MarshalJSON()
		require.NoError(t, err)

		var f Failure
		require.NoError(t, f.UnmarshalJSON(data))
		assert.Equal(t, failure, f)
	})

	t.Run("unmarshal errors", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{
				name:  "invalid json",
				input: "invalid",
			},
			{
				name:  "missing type",
				input: `{"invocation_id": "` + invocationID.String() + `"}`,
			},
			{
				name:  "wrong type",
				input: `{"type": "error", "invocation_id": "` + invocationID.String() + `"}`,
			},
			{
				name:  "missing invocation_id",
				input: `{"type": "failure"}`,
			},
			{
				name:  "invalid invocation_id",
				input: `{"type": "failure", "invocation_id": "invalid"}`,
			},
			{
				name:  "missing hook",
				input: `{"type": "failure", "invocation_id": "` + invocationID.String() + `"}`,
			},
			{
				name:  "missing owner",
				input: `{"type": "failure", "invocation_id": "` + invocationID.String() + `", "hook": "checkout.fees"}`,
			},
			{
				name:  "missing error",
				input: `{"type": "failure", "invocation_id": "` + invocationID.String() + `", "hook": "checkout.fees", "owner": "shipping"}`,
			},
			{
				name:  "invalid timestamp",
				input: `{"type": "failure", "invocation_id": "` + invocationID.String() + `", "hook": "checkout.fees", "owner": "shipping", "error": "boom", "timestamp": "not-a-time"}`,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var f Failure
				assert.Error(t, f.UnmarshalJSON([]byte(tt.input)))
			})
		}
	})
}

func TestFailureError(t *testing.T) {
	f := Failure{Hook: "checkout.fees", Owner: "shipping", Err: errors.New("boom")}
	msg := f.Error()
	assert.Contains(t, msg, "boom")
	assert.Contains(t, msg, "hook=checkout.fees")
	assert.Contains(t, msg, "owner=shipping")

	var empty Failure
	assert.Contains(t, empty.Error(), "<nil>")
}
