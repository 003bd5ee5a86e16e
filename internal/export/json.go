package export

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/metropower/dashboard/internal/domain"
)

// MarshalJSON encodes the record as an object keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value := f.Value
		switch v := value.(type) {
		case time.Time:
			value = v.Format(domain.DateLayout)
		case *time.Time:
			if v != nil {
				value = v.Format(domain.DateLayout)
			}
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
