package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// StructsByName maps every row into T, matching columns against `db`
// tags first and lowercased field names second. Columns without a
// matching field are ignored, fields without a matching column keep
// their zero value. A nil slice with a nil error means the query
// matched nothing.
func StructsByName[T any](ctx context.Context, q RowQuerier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := rowToStruct[T](rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func rowToStruct[T any](rows Rows) (T, error) {
	var zero T

	cols := rows.Columns()
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return zero, err
	}

	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return zero, fmt.Errorf("StructsByName target must be a struct, got %s", rt.Kind())
	}
	rv := reflect.New(rt).Elem()
	byName := columnFields(rt)

	for i, col := range cols {
		idx, ok := byName[strings.ToLower(col)]
		if !ok {
			continue
		}
		setField(rv.Field(idx), unwrapTime(vals[i]))
	}
	return rv.Interface().(T), nil
}

// columnFields indexes exported fields by db tag or lowercased name
func columnFields(t reflect.Type) map[string]int {
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		key := f.Tag.Get("db")
		if key == "" || key == "-" {
			key = f.Name
		}
		out[strings.ToLower(key)] = i
	}
	return out
}

func unwrapTime(v any) any {
	if t, ok := v.(*time.Time); ok {
		if t == nil {
			return nil
		}
		return *t
	}
	return v
}

func setField(dst reflect.Value, src any) {
	if !dst.CanSet() {
		return
	}
	if src == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}
	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(dst.Type()):
		dst.Set(sv)
	case sv.Type().ConvertibleTo(dst.Type()):
		dst.Set(sv.Convert(dst.Type()))
	default:
		if b, ok := src.([]byte); ok && dst.Kind() == reflect.String {
			dst.SetString(string(b))
		}
	}
}
