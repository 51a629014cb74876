package vars

import (
	"fmt"
	"strings"
)

// ParseBool accepts the usual spellings of yes and no, case insensitively.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true, nil
	case "false", "f", "no", "n", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a bool: %q", str)
}
