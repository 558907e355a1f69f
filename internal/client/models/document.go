package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DocumentRecord is a document as returned by the search endpoint.
type DocumentRecord struct {
	DocumentID      FlexString `json:"document_id"`
	DocumentName    string     `json:"document_name"`
	MajorHead       string     `json:"major_head"`
	MinorHead       string     `json:"minor_head"`
	DocumentDate    string     `json:"document_date"`
	DocumentRemarks string     `json:"document_remarks"`
	Tags            TagList    `json:"tags"`
	FilePath        string     `json:"file_path"`
}

// FlexString decodes a JSON string or number into a string. The API is not
// consistent about the type of identifiers.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// TagList decodes tags sent either as plain strings or as {"tag_name": ...}
// records.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	tags := make(TagList, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			tags = append(tags, s)
			continue
		}
		var ref TagRef
		if err := json.Unmarshal(item, &ref); err != nil {
			return fmt.Errorf("unsupported tag value %s", string(item))
		}
		tags = append(tags, ref.TagName)
	}
	*t = tags
	return nil
}
