package rdk

// response is the first qualifying key press of a trial.
type response struct {
	recorded bool
	rt       float64
	key      string
}

func noResponse() response { return response{rt: -1} }

// scoreResponse reports whether key matches every key listed in cc. A missing
// or malformed correct_choice is logged and scored incorrect.
func scoreResponse(cc CorrectChoice, key string, compare func(expected, actual string) bool) bool {
	if !cc.set || cc.raw == nil {
		Logf("rdk: correct_choice must be a list of key names")
		return false
	}

	var keys []any
	switch v := cc.raw.(type) {
	case []any:
		keys = v
	case []string:
		for _, k := range v {
			keys = append(keys, k)
		}
	default:
		Logf("rdk: correct_choice must be a list of key names, got %T", cc.raw)
		return false
	}
	if len(keys) == 0 {
		Logf("rdk: correct_choice is empty")
		return false
	}
	if _, ok := keys[0].(string); !ok {
		Logf("rdk: correct_choice elements must be key names, got %T", keys[0])
		return false
	}

	for _, k := range keys {
		s, ok := k.(string)
		if !ok || !compare(s, key) {
			return false
		}
	}
	return true
}
