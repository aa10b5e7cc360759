package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// DetailPathPrefix is the path under which each commission's detail page lives.
const DetailPathPrefix = "/commission/"

// CommissionID is the opaque identifier of a commission. The API may encode it
// as a JSON number or a JSON string; both decode to their textual form.
type CommissionID string

// UnmarshalJSON accepts any JSON value. Non-string values keep their JSON
// text, so `7` becomes "7" and `true` becomes "true".
func (id *CommissionID) UnmarshalJSON(data []byte) error {
	text, err := jsonText(data)
	if err != nil {
		return fmt.Errorf("commission id: %w", err)
	}
	*id = CommissionID(text)
	return nil
}

// MarshalJSON keeps numeric-looking ids numeric so payloads round-trip with
// the API's own encoding.
func (id CommissionID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id CommissionID) String() string {
	return string(id)
}

// DisplayText is a string field shown verbatim on the board. The API does not
// validate its payload, so any JSON value is accepted and kept in its JSON
// text form: `5` shows as 5 and `null` as null.
type DisplayText string

// UnmarshalJSON accepts any JSON value.
func (t *DisplayText) UnmarshalJSON(data []byte) error {
	text, err := jsonText(data)
	if err != nil {
		return err
	}
	*t = DisplayText(text)
	return nil
}

func (t DisplayText) String() string {
	return string(t)
}

// jsonText returns the content of a JSON string, or the compacted JSON text
// of any other value.
func jsonText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Commission is a single posting as returned by GET /api/commissions.
// Values are never mutated after decoding.
type Commission struct {
	ID          CommissionID `json:"id"`
	Title       DisplayText  `json:"title"`
	Category    DisplayText  `json:"category"`
	Description DisplayText  `json:"description"`
}

// DetailPath returns the navigation target for the commission's detail page.
func (c Commission) DetailPath() string {
	return DetailPath(c.ID)
}

// DetailPath builds /commission/{id} with the id escaped as a single path segment.
func DetailPath(id CommissionID) string {
	return DetailPathPrefix + url.PathEscape(string(id))
}

// LoadState is the observable outcome of one load of the board.
type LoadState string

// Load outcomes.
const (
	LoadPopulated LoadState = "populated"
	LoadEmpty     LoadState = "empty"
	LoadFailed    LoadState = "failed"
)
