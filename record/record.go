package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kbukum/catlog/category"
)

// ErrorInfo is the error attached to a record.
type ErrorInfo struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Fields are the inputs of New.
type Fields struct {
	ID       string
	Time     time.Time
	Category category.Category
	Severity Severity
	Message  string
	Data     any
	Error    *ErrorInfo
}

// Record is one logged event. The zero value is not a valid record; build
// records with New.
type Record struct {
	id       string
	time     time.Time
	category category.Category
	severity Severity
	message  string
	data     any
	err      *ErrorInfo
}

// New builds a record. It panics if the category is not declared or the
// severity is None or undeclared, both of which are programming errors.
func New(f Fields) Record {
	if !f.Category.Valid() {
		panic(fmt.Sprintf("record: unknown category %d", uint8(f.Category)))
	}
	if !f.Severity.Valid() || f.Severity == None {
		panic(fmt.Sprintf("record: severity %s cannot be attached to a record", f.Severity))
	}
	var errInfo *ErrorInfo
	if f.Error != nil {
		cp := *f.Error
		errInfo = &cp
	}
	return Record{
		id:       f.ID,
		time:     f.Time,
		category: f.Category,
		severity: f.Severity,
		message:  f.Message,
		data:     f.Data,
		err:      errInfo,
	}
}

func (r Record) ID() string                  { return r.id }
func (r Record) Time() time.Time             { return r.time }
func (r Record) Category() category.Category { return r.category }
func (r Record) Severity() Severity          { return r.severity }
func (r Record) Message() string             { return r.message }

// Data returns the structured payload, or nil. Callers must treat it as
// read-only: the same value is shared by every transport.
func (r Record) Data() any { return r.data }

// HasData reports whether the record carries a payload.
func (r Record) HasData() bool { return r.data != nil }

// Error returns a copy of the attached error, or nil.
func (r Record) Error() *ErrorInfo {
	if r.err == nil {
		return nil
	}
	cp := *r.err
	return &cp
}

// Meta returns the metadata of the record's category.
func (r Record) Meta() category.Meta { return category.MetaFor(r.category) }

// WithData returns a copy of r whose payload is replaced by data.
func (r Record) WithData(data any) Record {
	r.data = data
	return r
}

type wireRecord struct {
	ID       string            `json:"id,omitempty"`
	Time     string            `json:"time"`
	Category category.Category `json:"category"`
	Severity Severity          `json:"severity"`
	Message  string            `json:"message"`
	Data     json.RawMessage   `json:"data,omitempty"`
	Error    *ErrorInfo        `json:"error,omitempty"`
}

// MarshalJSON encodes every field of the record. It fails when the payload
// cannot be encoded.
func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		ID:       r.id,
		Time:     r.time.Format(time.RFC3339Nano),
		Category: r.category,
		Severity: r.severity,
		Message:  r.message,
		Error:    r.err,
	}
	if r.data != nil {
		raw, err := json.Marshal(r.data)
		if err != nil {
			return nil, fmt.Errorf("record: encode data: %w", err)
		}
		w.Data = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a record produced by MarshalJSON. Numbers in the
// payload are kept as json.Number so re-encoding reproduces them exactly.
func (r *Record) UnmarshalJSON(b []byte) error {
	var w wireRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("record: decode: %w", err)
	}
	if w.Severity == None {
		return fmt.Errorf("record: severity NONE cannot be attached to a record")
	}
	ts, err := time.Parse(time.RFC3339Nano, w.Time)
	if err != nil {
		return fmt.Errorf("record: decode time: %w", err)
	}
	var data any
	if len(w.Data) > 0 && !bytes.Equal(w.Data, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(w.Data))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return fmt.Errorf("record: decode data: %w", err)
		}
	}
	*r = Record{
		id:       w.ID,
		time:     ts,
		category: w.Category,
		severity: w.Severity,
		message:  w.Message,
		data:     data,
		err:      w.Error,
	}
	return nil
}
