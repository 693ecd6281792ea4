package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns lists the column names from a struct's "db" tags, walking
// embedded structs recursively. Called once per repository at construction,
// so the reflection cost does not matter.
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

func columnsOf(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			cols = append(cols, columnsOf(f.Type)...)
			continue
		}
		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
	}
	return cols
}

type fieldPlan struct {
	tagged   []taggedField
	embedded []int
}

type taggedField struct {
	index int
	tag   string
}

var planCache sync.Map // reflect.Type -> *fieldPlan

func planFor(t reflect.Type) *fieldPlan {
	if cached, ok := planCache.Load(t); ok {
		return cached.(*fieldPlan)
	}

	plan := &fieldPlan{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			plan.embedded = append(plan.embedded, i)
			continue
		}
		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		plan.tagged = append(plan.tagged, taggedField{index: i, tag: tag})
	}

	planCache.Store(t, plan)
	return plan
}

// StructToMap converts a struct to a column→value map using "db" tags.
// Field layouts are cached per type, so repeated calls only pay for the
// value extraction.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	plan := planFor(rv.Type())
	res := make(map[string]any, len(plan.tagged))

	for _, f := range plan.tagged {
		res[f.tag] = rv.Field(f.index).Interface()
	}
	for _, i := range plan.embedded {
		for k, val := range StructToMap(rv.Field(i).Interface()) {
			res[k] = val
		}
	}
	return res
}
