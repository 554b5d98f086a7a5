package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"
)

// JSONSerializer matches request body keys against json tags exactly.
// encoding/json folds case, so {"NAME": "a"} would otherwise fill Name.
type JSONSerializer struct {
	echo.DefaultJSONSerializer
}

func (s JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return decodeError(err)
	}
	if names := jsonFieldNames(i); names != nil {
		for k := range raw {
			if !names[k] {
				delete(raw, k)
			}
		}
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, i); err != nil {
		return decodeError(err)
	}
	return nil
}

func jsonFieldNames(i interface{}) map[string]bool {
	t := reflect.TypeOf(i)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	names := make(map[string]bool, t.NumField())
	for n := 0; n < t.NumField(); n++ {
		f := t.Field(n)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		names[name] = true
	}
	return names
}

// decodeError mirrors the messages of echo.DefaultJSONSerializer.
func decodeError(err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)).SetInternal(err)
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Syntax error: offset=%v, error=%v", se.Offset, se.Error())).SetInternal(err)
	}
	return err
}
