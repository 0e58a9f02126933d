// Package responseformat writes API responses as JSON or MessagePack.
package responseformat

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/vmihailenco/msgpack/v5"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct {
	cors bool
}

// NewFormatter creates a new response formatter. With cors set every response
// allows any origin.
func NewFormatter(cors bool) *Formatter {
	return &Formatter{cors: cors}
}

// ErrorBody is the payload of every non-2xx API response.
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// RequestedFormat returns MessagePack when the query has format=msgpack and
// JSON otherwise.
func RequestedFormat(req *http.Request) almanac.Format {
	if req.URL.Query().Get("format") == string(almanac.MsgPack) {
		return almanac.MsgPack
	}
	return almanac.JSON
}

// WriteResponse encodes data in the requested format with the given status.
// The body is encoded before any header is sent so an encoding failure can
// still become a 500.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any) error {
	format := RequestedFormat(req)

	var buf bytes.Buffer
	var err error
	if format == almanac.MsgPack {
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json") // Use json tags for MessagePack
		err = enc.Encode(data)
	} else {
		err = json.NewEncoder(&buf).Encode(data)
	}
	if err != nil {
		return err
	}

	f.writeBody(w, format, status, buf.Bytes())
	return nil
}

// WriteYear writes a year file in the requested format.
func (f *Formatter) WriteYear(w http.ResponseWriter, req *http.Request, y almanac.YearData) error {
	format := RequestedFormat(req)
	var buf bytes.Buffer
	if err := almanac.Encode(&buf, y, format); err != nil {
		return err
	}
	f.writeBody(w, format, http.StatusOK, buf.Bytes())
	return nil
}

// WriteError writes an ErrorBody. Encoding failures fall back to plain text.
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, msg string) {
	if err := f.WriteResponse(w, req, status, ErrorBody{Error: msg, Status: status}); err != nil {
		http.Error(w, msg, status)
	}
}

func (f *Formatter) writeBody(w http.ResponseWriter, format almanac.Format, status int, body []byte) {
	if f.cors {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)
	w.Write(body)
}
