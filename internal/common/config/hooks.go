package config

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/scicrunch/sckan-nli/internal/common/sckanerrors"
	"github.com/scicrunch/sckan-nli/internal/export"
)

var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(StringToStepHookFunc()),
}

// StringToStepHookFunc lets a plan step be written as "query.rq=output.json" in the config file,
// in addition to the {query: ..., output: ...} form.
func StringToStepHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		// check that src and target types are valid
		if f.Kind() != reflect.String || t != reflect.TypeOf(export.Step{}) {
			return data, nil
		}
		return ParseStep(data.(string))
	}
}

func ParseStep(s string) (export.Step, error) {
	query, output, found := strings.Cut(s, "=")
	if !found {
		return export.Step{}, &sckanerrors.ErrInvalidArgument{
			Name:    "queries",
			Value:   s,
			Message: "expected <query-file>=<output-file>",
		}
	}
	return export.Step{
		Query:  strings.TrimSpace(query),
		Output: strings.TrimSpace(output),
	}, nil
}
