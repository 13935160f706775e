package airport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Status is one airport status record as served by the status API.
// Keys follow the API casing.
type Status struct {
	Code    string  `json:"IATA" validate:"required"`
	Name    string  `json:"Name" validate:"required"`
	Delay   bool    `json:"Delay"`
	Weather Weather `json:"Weather"`
}

type Weather struct {
	Temperature []Reading `json:"Temp" validate:"min=1,dive,required"`
}

// FirstReading returns the first reported temperature.
func (w Weather) FirstReading() Reading {
	if len(w.Temperature) == 0 {
		return ""
	}

	return w.Temperature[0]
}

// Reading is one temperature reading. The API reports plain numbers as well
// as annotated strings like "64.0 F (17.8 C)", both are kept verbatim.
type Reading string

func (r *Reading) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Reading(s)
		return nil
	}

	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("temperature reading %s: %w", data, err)
	}
	*r = Reading(n.String())

	return nil
}

func (r Reading) String() string {
	return string(r)
}

// Validate reports whether every required field was present in the payload.
func (s Status) Validate() error {
	if err := validate.Struct(s); err != nil {
		return ErrIncompleteRecord.Wrap(err)
	}

	return nil
}

// Decode reads one status document and rejects partially populated ones.
func Decode(r io.Reader) (Status, error) {
	var status Status

	dec := json.NewDecoder(r)
	if err := dec.Decode(&status); err != nil {
		return Status{}, fmt.Errorf("decode airport status: %w", err)
	}

	// error pages appended after a valid document still fail the fetch
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Status{}, ErrTrailingData
	}

	if err := status.Validate(); err != nil {
		return Status{}, err
	}

	return status, nil
}
