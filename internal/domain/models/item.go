package models

import (
	"encoding/json"
	"strings"
)

// NA is the sentinel stored for intentionally absent optional fields. It is
// part of the sheet's existing data and must round-trip unchanged.
const NA = "NA"

// FlexString decodes a JSON string or number into a string. The sheet API is
// not consistent about numeric cells: qty and price come back as numbers for
// some rows and as strings for others.
type FlexString string

// UnmarshalJSON accepts both `"12"` and `12`.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// MarshalJSON always emits a string, which is what the sheet API expects on
// writes.
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f FlexString) String() string {
	return string(f)
}

// RawItem is the wire shape of a record as the sheet API stores it. Dates may
// still carry the legacy spreadsheet serial encoding here; nothing above the
// store client should consume a RawItem without normalizing it first.
type RawItem struct {
	UID          string     `json:"uid"`
	Date         FlexString `json:"date"`
	ItemName     string     `json:"item_name"`
	Qty          FlexString `json:"qty"`
	CustomerName string     `json:"customer_name"`
	Price        FlexString `json:"price"`
	DuePrice     FlexString `json:"due_price"`
}

// Item is the normalized domain view of a record: Date is always YYYY-MM-DD
// and DisplayDate is the human-facing rendering of the same day.
type Item struct {
	UID          string `json:"uid"`
	Date         string `json:"date"`
	DisplayDate  string `json:"display_date"`
	ItemName     string `json:"item_name"`
	Qty          string `json:"qty"`
	CustomerName string `json:"customer_name"`
	Price        string `json:"price"`
	DuePrice     string `json:"due_price"`
}

// QtyOrDefault returns the quantity cell, falling back to "1" for legacy rows
// that were written without one.
func (i Item) QtyOrDefault() string {
	if strings.TrimSpace(i.Qty) == "" {
		return "1"
	}
	return i.Qty
}

// HasDue reports whether the record carries a real outstanding amount rather
// than the NA sentinel.
func (i Item) HasDue() bool {
	return i.DuePrice != "" && i.DuePrice != NA
}
