package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// officeLabel is the prefix rendered before a couple's room.
const officeLabel = "Кабинет"

// Schedule is the decoded upstream payload for one group.
type Schedule struct {
	Items []ScheduleItem `json:"schedule"`
}

type ScheduleItem struct {
	Name    string   `json:"name"`
	Couples []Couple `json:"couples"`
}

type Couple struct {
	Name   string     `json:"name"`
	Office FlexString `json:"office"`
}

// FlexString accepts a JSON string, number or null.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	default:
		*f = FlexString(b)
		return nil
	}
}

// Render produces the opaque text compared between ticks.
// Items are separated by a blank line; an item without couples renders as its header only.
func (s Schedule) Render() string {
	parts := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		parts = append(parts, item.Render())
	}
	return strings.Join(parts, "\n\n")
}

func (it ScheduleItem) Render() string {
	var b strings.Builder
	b.WriteString(it.Name)
	b.WriteString(":")
	for _, c := range it.Couples {
		b.WriteString("\n")
		b.WriteString(c.Render())
	}
	return b.String()
}

func (c Couple) Render() string {
	return c.Name + " (" + officeLabel + ": " + string(c.Office) + ")"
}
