package configuration

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// secondsToDurationHookFunc returns a mapstructure decode hook that interprets
// plain numbers as seconds when decoding into a time.Duration, f.ex. "duration: 14"
// or "duration: 0.5". Duration strings like "14s" are left to
// mapstructure.StringToTimeDurationHookFunc.
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != durationType || f == durationType {
			return data, nil
		}

		var seconds float64
		switch v := data.(type) {
		case int:
			seconds = float64(v)
		case int32:
			seconds = float64(v)
		case int64:
			seconds = float64(v)
		case uint:
			seconds = float64(v)
		case uint64:
			seconds = float64(v)
		case float32:
			seconds = float64(v)
		case float64:
			seconds = v
		default:
			return data, nil
		}

		return time.Duration(seconds * float64(time.Second)), nil
	}
}
