// Package clone produces structural deep copies of arbitrary Go values.
//
// The single entry point, Deep, walks a value with reflection and returns a
// copy that shares no mutable substructure with the input: mutating the copy
// never affects the original. It is used by pkg/store to hand reducers an
// owned draft of the current state on every dispatch.
//
// # Supported kinds
//
//   - Pointers are followed and re-allocated.
//   - Structs are rebuilt field by field. Unexported fields are cloned as
//     well, reached through their address with package unsafe.
//   - Slices and arrays are cloned element-wise; byte slices are copied in one
//     step.
//   - Maps are rebuilt entry by entry with cloned values, which also covers
//     set-shaped maps such as map[string]struct{}. Keys are kept as they are,
//     so a pointer key still finds its entry in the copy.
//   - Interfaces are cloned by their dynamic value.
//
// A few value kinds are recognised explicitly and rebuilt as a fresh instance
// of the same kind instead of being walked generically: time.Time,
// *regexp.Regexp, *bytes.Buffer, *multipart.FileHeader (shallow, with its
// header map copied) and the common image pixel buffers (*image.RGBA,
// *image.NRGBA, *image.Gray, *image.Alpha, *image.Paletted).
//
// Scalars, strings, funcs, channels, unsafe pointers and *os.File handles are
// returned unchanged.
//
// # Limitations
//
// Deep does not track visited pointers. Cyclic structures recurse without
// bound and eventually overflow the stack. Two pointers to the same object in
// the input become two independent objects in the copy.
//
// # Usage
//
//	type Draft struct {
//		Tags  map[string]struct{}
//		Items []Item
//		Seen  time.Time
//	}
//
//	cp := clone.Deep(draft)
//	cp.Tags["new"] = struct{}{} // draft.Tags is untouched
package clone
