package clone

import (
	"bytes"
	"image"
	"maps"
	"mime/multipart"
	"os"
	"reflect"
	"regexp"
	"slices"
	"time"
	"unsafe"
)

// Deep returns a deep copy of v.
func Deep[T any](v T) T {
	src := reflect.ValueOf(&v).Elem()
	out, _ := cloneValue(src).Interface().(T)
	return out
}

var (
	timeType   = reflect.TypeOf(time.Time{})
	regexpType = reflect.TypeOf((*regexp.Regexp)(nil))
	bufferType = reflect.TypeOf((*bytes.Buffer)(nil))
	fileType   = reflect.TypeOf((*os.File)(nil))
)

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	if out, ok := cloneSpecial(v); ok {
		return out
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))
		return out

	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneValue(v.Elem()))
		return out

	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		if v.Type().Elem().Kind() == reflect.Uint8 {
			reflect.Copy(out, v)
			return out
		}
		for i := range v.Len() {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out

	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out

	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		// Keys keep their identity so lookups by the original key still work.
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out

	case reflect.Struct:
		src := v
		if !src.CanAddr() {
			src = reflect.New(v.Type()).Elem()
			src.Set(v)
		}
		out := reflect.New(v.Type()).Elem()
		for i := range v.NumField() {
			field := out.Field(i)
			if field.CanSet() {
				field.Set(cloneValue(src.Field(i)))
				continue
			}
			// Unexported fields are reached through their address.
			from := reflect.NewAt(field.Type(), unsafe.Pointer(src.Field(i).UnsafeAddr())).Elem()
			to := reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
			to.Set(cloneValue(from))
		}
		return out

	default:
		// Scalars, strings, funcs, channels and unsafe pointers.
		return v
	}
}

// cloneSpecial rebuilds value kinds that must not be walked field by field.
func cloneSpecial(v reflect.Value) (reflect.Value, bool) {
	if !v.CanInterface() {
		return reflect.Value{}, false
	}

	switch v.Type() {
	case timeType:
		t := v.Interface().(time.Time)
		return reflect.ValueOf(t), true
	case regexpType:
		if v.IsNil() {
			return reflect.Zero(v.Type()), true
		}
		re := v.Interface().(*regexp.Regexp)
		return reflect.ValueOf(regexp.MustCompile(re.String())), true
	case bufferType:
		if v.IsNil() {
			return reflect.Zero(v.Type()), true
		}
		buf := v.Interface().(*bytes.Buffer)
		return reflect.ValueOf(bytes.NewBuffer(bytes.Clone(buf.Bytes()))), true
	case fileType:
		return v, true
	}

	if v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, false
	}

	switch x := v.Interface().(type) {
	case *multipart.FileHeader:
		fh := *x
		fh.Header = maps.Clone(x.Header)
		for k, vs := range fh.Header {
			fh.Header[k] = slices.Clone(vs)
		}
		return reflect.ValueOf(&fh), true
	case *image.Paletted:
		return reflect.ValueOf(&image.Paletted{
			Pix:     bytes.Clone(x.Pix),
			Stride:  x.Stride,
			Rect:    x.Rect,
			Palette: slices.Clone(x.Palette),
		}), true
	}

	switch img := v.Interface().(type) {
	case *image.RGBA:
		return reflect.ValueOf(&image.RGBA{Pix: bytes.Clone(img.Pix), Stride: img.Stride, Rect: img.Rect}), true
	case *image.NRGBA:
		return reflect.ValueOf(&image.NRGBA{Pix: bytes.Clone(img.Pix), Stride: img.Stride, Rect: img.Rect}), true
	case *image.Gray:
		return reflect.ValueOf(&image.Gray{Pix: bytes.Clone(img.Pix), Stride: img.Stride, Rect: img.Rect}), true
	case *image.Alpha:
		return reflect.ValueOf(&image.Alpha{Pix: bytes.Clone(img.Pix), Stride: img.Stride, Rect: img.Rect}), true
	}

	return reflect.Value{}, false
}
