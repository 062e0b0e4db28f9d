package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Medium is the key-value contract the ledger, auth and avatar layers are
// written against. *DB implements it.
type Medium interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

var _ Medium = (*DB)(nil)

// ErrCorrupt is matched by errors.Is for any stored value that does not
// decode into the expected shape.
var ErrCorrupt = errors.New("corrupt stored value")

// CorruptError reports the key holding an undecodable value.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt value under %q: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// ReadJSON decodes the value under key into v. found is false, and v left
// untouched, when the key is absent.
func ReadJSON(m Medium, key string, v any) (found bool, err error) {
	raw, ok, err := m.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, &CorruptError{Key: key, Err: err}
	}
	return true, nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(m Medium, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return m.Set(key, string(data))
}
