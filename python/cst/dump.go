package cst

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Dump returns an indented description of a tree for debugging, showing
// every node, field and whitespace string.
func Dump(n Node) string {
	var sb strings.Builder
	dumpValue(&sb, reflect.ValueOf(n), 0)
	sb.WriteString("\n")
	return sb.String()
}

func dumpValue(sb *strings.Builder, v reflect.Value, depth int) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			sb.WriteString("nil")
			return
		}
		dumpValue(sb, v.Elem(), depth)

	case reflect.Struct:
		sb.WriteString(v.Type().Name())
		sb.WriteString(" {")
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if isZero(f) {
				continue
			}
			sb.WriteString("\n")
			indent(sb, depth+1)
			sb.WriteString(v.Type().Field(i).Name)
			sb.WriteString(": ")
			dumpValue(sb, f, depth+1)
		}
		sb.WriteString("\n")
		indent(sb, depth)
		sb.WriteString("}")

	case reflect.Slice:
		sb.WriteString("[")
		for i := 0; i < v.Len(); i++ {
			sb.WriteString("\n")
			indent(sb, depth+1)
			dumpValue(sb, v.Index(i), depth+1)
		}
		sb.WriteString("\n")
		indent(sb, depth)
		sb.WriteString("]")

	case reflect.String:
		sb.WriteString(strconv.Quote(v.String()))

	default:
		fmt.Fprintf(sb, "%v", v.Interface())
	}
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Slice:
		return v.Len() == 0
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Struct:
		return v.IsZero()
	}
	return false
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}
