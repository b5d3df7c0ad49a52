package utils

import "strconv"

// StringToUint64 parses a numeric id from a URL parameter.
// Returns 0 on garbage input; 0 is never a valid row id here.
func StringToUint64(str string) uint64 {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return val
}
