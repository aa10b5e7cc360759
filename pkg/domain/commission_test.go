package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionIDDecoding(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    CommissionID
		wantErr bool
	}{
		{name: "integer", payload: `7`, want: "7"},
		{name: "string", payload: `"abc-1"`, want: "abc-1"},
		{name: "numeric string", payload: `"42"`, want: "42"},
		{name: "null", payload: `null`, want: "null"},
		{name: "boolean", payload: `true`, want: "true"},
		{name: "float", payload: `1.50`, want: "1.50"},
		{name: "object", payload: `{"a": 1}`, want: `{"a":1}`},
		{name: "invalid", payload: `"unterminated`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id CommissionID
			err := json.Unmarshal([]byte(tt.payload), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCommissionListDecoding(t *testing.T) {
	payload := `[
		{"id": 1, "title": "New Commission (Web Developer)", "category": "Web Developer", "description": "line1\nline2"},
		{"id": "x9", "title": "Logo", "category": "Design", "description": ""}
	]`

	var list []Commission
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	require.Len(t, list, 2)

	assert.Equal(t, CommissionID("1"), list[0].ID)
	assert.Equal(t, DisplayText("Web Developer"), list[0].Category)
	assert.Equal(t, DisplayText("line1\nline2"), list[0].Description)
	assert.Equal(t, CommissionID("x9"), list[1].ID)
}

func TestDisplayTextDecoding(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    DisplayText
	}{
		{name: "string", payload: `"Logo design"`, want: "Logo design"},
		{name: "escaped", payload: `"line1\nline2"`, want: "line1\nline2"},
		{name: "number", payload: `5`, want: "5"},
		{name: "boolean", payload: `false`, want: "false"},
		{name: "null", payload: `null`, want: "null"},
		{name: "array", payload: `[1, "a"]`, want: `[1,"a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var text DisplayText
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &text))
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestCommissionMismatchedFields(t *testing.T) {
	payload := `[{"id": true, "title": 5, "category": null, "description": ["x"]}, {"title": "no id"}]`

	var list []Commission
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	require.Len(t, list, 2)

	assert.Equal(t, Commission{ID: "true", Title: "5", Category: "null", Description: `["x"]`}, list[0])
	assert.Equal(t, "/commission/true", list[0].DetailPath())
	assert.Equal(t, Commission{Title: "no id"}, list[1], "absent fields stay empty")
}

func TestCommissionIDMarshal(t *testing.T) {
	out, err := json.Marshal(Commission{ID: "12", Title: "t"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":12`)

	out, err = json.Marshal(Commission{ID: "a-1"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id":"a-1"`)
}

func TestDetailPath(t *testing.T) {
	assert.Equal(t, "/commission/7", Commission{ID: "7"}.DetailPath())
	assert.Equal(t, "/commission/a%2Fb", DetailPath("a/b"))
	assert.Equal(t, "/commission/", DetailPath(""))
}

func TestFetchErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("load: %w", &FetchError{URL: "http://api/api/commissions", Err: cause})

	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, cause)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 0, fe.StatusCode)
	assert.Equal(t, "fetch http://api/api/commissions: connection refused", fe.Error())

	status := &FetchError{URL: "u", StatusCode: 503}
	assert.Equal(t, "fetch u: status 503", status.Error())
	assert.ErrorIs(t, status, ErrFetchFailed)
}
