package llmjson

import (
	"github.com/go-viper/mapstructure/v2"
)

// Decode repairs input and decodes the result into target, honoring
// json struct tags.
func Decode(input string, target any, opts ...Option) error {
	value, err := Parse(input, opts...)
	if err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(plain(value))
}

// plain lowers the parsed representation to maps, slices and scalars.
// A Number becomes an int64 when it is integral and a float64 otherwise;
// the non-finite sentinels stay as their lexemes.
func plain(value any) any {
	switch v := value.(type) {
	case *Object:
		m := make(map[string]any, v.Len())
		for key, member := range v.All() {
			m[key] = plain(member)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	case Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if v.IsFinite() {
			f, _ := v.Float64()
			return f
		}
		return string(v)
	default:
		return v
	}
}
