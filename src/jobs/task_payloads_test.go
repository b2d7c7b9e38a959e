package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloseFormTask(t *testing.T) {
	task, err := NewCloseFormTask("64abc0123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, TypeCloseForm, task.Type())

	var payload CloseFormPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "64abc0123456789012345678", payload.FormID)
}
