package utils

import (
	"reflect"
	"strconv"
	"strings"
)

// structValue unwraps a pointer-to-struct DTO, returning a zero Value for
// anything else.
func structValue(dto any) reflect.Value {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return v.Elem()
}

// NormalizeDTO trims string fields and rounds float64 fields in place on a
// create-style DTO (plain fields).
func NormalizeDTO(dto any) {
	s := structValue(dto)
	if !s.IsValid() {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(strings.TrimSpace(f.String()))
		case reflect.Float64:
			f.SetFloat(Round2(f.Float()))
		}
	}
}

// NormalizePtrDTO does the same for patch-style DTOs (pointer fields).
// Nil fields stay nil, so absent keys never turn into updates.
func NormalizePtrDTO(dto any) {
	s := structValue(dto)
	if !s.IsValid() {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		switch e := f.Elem(); e.Kind() {
		case reflect.String:
			e.SetString(strings.TrimSpace(e.String()))
		case reflect.Float64:
			e.SetFloat(Round2(e.Float()))
		}
	}
}

// UpdatesFromPtrDTO collects the non-nil pointer fields of a patch DTO
// into a gorm Updates map, keyed by the field's json name. renames maps a
// json name to a different column name where the two diverge.
func UpdatesFromPtrDTO(dto any, renames map[string]string) map[string]any {
	res := make(map[string]any)
	s := structValue(dto)
	if !s.IsValid() {
		return res
	}
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		fv := s.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if alt, ok := renames[name]; ok && alt != "" {
			name = alt
		}
		res[name] = fv.Elem().Interface()
	}
	return res
}

// ParseIntDefault parses a non-negative query int, falling back to def.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
