package stock

import (
	"strconv"
	"strings"
)

// RowState is one stock row as the UI renders it.
type RowState struct {
	ProductID string `json:"product_id"`
	Value     int    `json:"value"`
	Text      string `json:"text"`
	Confirmed int    `json:"confirmed"`
	Pending   bool   `json:"pending"`
	Editing   bool   `json:"editing"`
	Saving    bool   `json:"saving"`
}

type row struct {
	id string

	value     int    // displayed, optimistic
	text      string // input buffer; differs from value only while editing
	editing   bool
	confirmed int // last value the backend accepted

	pending      bool // a value waits for the debounce window or for the in-flight write
	pendingValue int
	timer        Timer
	gen          uint64 // invalidates superseded timers; drawn from the controller

	inFlight bool
	saving   bool
	seq      uint64 // controller-wide sequence of the latest issued write
}

func newRow(id string, quantity int) *row {
	return &row{
		id:        id,
		value:     quantity,
		text:      strconv.Itoa(quantity),
		confirmed: quantity,
	}
}

func (r *row) busy() bool {
	return r.inFlight || r.pending || r.editing
}

func (r *row) state() RowState {
	return RowState{
		ProductID: r.id,
		Value:     r.value,
		Text:      r.text,
		Confirmed: r.confirmed,
		Pending:   r.pending,
		Editing:   r.editing,
		Saving:    r.saving,
	}
}

func (r *row) show(v int) {
	r.value = v
	r.text = strconv.Itoa(v)
	r.editing = false
}

// digitsOnly drops every non-digit rune so the buffer never holds anything Atoi could misread.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// sanitize parses raw, coercing failures and values below min to min.
func sanitize(raw string, min int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return min
	}
	return v
}
