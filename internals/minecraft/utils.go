package minecraft

import (
	"encoding/json"
	"strings"
)

// stringSlice is a slice of strings that can be unmarshalled from a string or a []string
type stringSlice []string

func (w *stringSlice) String() string {
	return strings.Join(*w, " ")
}

// UnmarshalJSON is needed because argument sometimes is a string
func (w *stringSlice) UnmarshalJSON(data []byte) (err error) {
	if len(data) > 0 && data[0] == '[' {
		var arg []string
		if err := json.Unmarshal(data, &arg); err != nil {
			return err
		}
		*w = arg
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*w = []string{single}
	return nil
}
