package talon

import (
	"errors"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var failureJSON = []byte(`{"type":"failure"}`)

// Failure describes one implementation call that did not complete during a
// hook invocation. Dispatch recovers the underlying error or panic, hands a
// Failure to the configured Reporter and moves on to the next registration,
// so a Failure never reaches the invoking caller directly.
//
// InvocationID groups the failures of a single Invoke call; every
// registration that failed during that call carries the same id.
type Failure struct {
	InvocationID uuid.UUID       `json:"invocation_id"`
	Hook         string          `json:"hook"`
	Owner        string          `json:"owner"`
	Err          error           `json:"error"`
	Timestamp    strfmt.DateTime `json:"timestamp,omitempty"`
}

// MarshalJSON implements custom JSON marshaling for Failure
func (f Failure) MarshalJSON() ([]byte, error) {
	result := failureJSON

	var err error
	result, err = sjson.SetBytes(result, "invocation_id", f.InvocationID.String())
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "hook", f.Hook)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "owner", f.Owner)
	if err != nil {
		return nil, err
	}

	if f.Err != nil {
		result, err = sjson.SetBytes(result, "error", f.Err.Error())
		if err != nil {
			return nil, err
		}
	}

	if !f.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", f.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Failure
func (f *Failure) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != "failure" {
		return fmt.Errorf("missing or invalid type, expected 'failure'")
	}

	invocationID := gjson.GetBytes(data, "invocation_id")
	if !invocationID.Exists() {
		return fmt.Errorf("missing required field 'invocation_id'")
	}
	if err := f.InvocationID.UnmarshalText([]byte(invocationID.String())); err != nil {
		return fmt.Errorf("invalid invocation_id: %w", err)
	}

	hook := gjson.GetBytes(data, "hook")
	if !hook.Exists() {
		return fmt.Errorf("missing required field 'hook'")
	}
	f.Hook = hook.String()

	owner := gjson.GetBytes(data, "owner")
	if !owner.Exists() {
		return fmt.Errorf("missing required field 'owner'")
	}
	f.Owner = owner.String()

	errMsg := gjson.GetBytes(data, "error")
	if !errMsg.Exists() {
		return errors.New("missing required field 'error'")
	}
	f.Err = errors.New(errMsg.String())

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := f.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	return nil
}

func (f Failure) Error() string {
	errStr := "<nil>"
	if f.Err != nil {
		errStr = f.Err.Error()
	}
	return fmt.Sprintf("%s hook=%s owner=%s invocation_id=%s", errStr, f.Hook, f.Owner, f.InvocationID)
}
