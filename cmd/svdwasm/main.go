//go:build js && wasm

// Command svdwasm exposes the reconstruction kernels to JavaScript.
//
//	reconstruct(r, g, b, width, height) Float32Array
//	reconstruct_channel(u, s, vt, width, height, rank) Float32Array
//
// Every argument array is a Float32Array. Inputs are copied once into Go
// memory and the result is copied once into a new Float32Array owned by the
// caller. Inconsistent geometry throws from the Go side.
package main

import (
	"fmt"
	"syscall/js"
	"unsafe"

	"github.com/yyyoichi/lowrank"
)

func main() {
	js.Global().Set("reconstruct", reconstruct())
	js.Global().Set("reconstruct_channel", reconstructChannel())

	fmt.Println("svdwasm ready: reconstruct, reconstruct_channel")
	select {}
}

func reconstruct() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 5 {
			panic(fmt.Sprintf("reconstruct: want 5 arguments, got %d", len(args)))
		}
		r := float32sFromJS(args[0])
		g := float32sFromJS(args[1])
		b := float32sFromJS(args[2])
		width, height := uint32(args[3].Int()), uint32(args[4].Int())
		return float32sToJS(lowrank.Reconstruct(r, g, b, width, height))
	})
}

func reconstructChannel() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 6 {
			panic(fmt.Sprintf("reconstruct_channel: want 6 arguments, got %d", len(args)))
		}
		u := float32sFromJS(args[0])
		s := float32sFromJS(args[1])
		vt := float32sFromJS(args[2])
		width, height, rank := uint32(args[3].Int()), uint32(args[4].Int()), uint32(args[5].Int())
		return float32sToJS(lowrank.ReconstructChannel(u, s, vt, width, height, rank))
	})
}

// float32sFromJS copies a Float32Array into a new Go slice.
func float32sFromJS(v js.Value) []float32 {
	length := v.Get("length").Int()
	out := make([]float32, length)
	if length == 0 {
		return out
	}
	// CopyBytesToGo only accepts byte arrays, so view the same buffer as bytes.
	bytes := js.Global().Get("Uint8Array").New(v.Get("buffer"), v.Get("byteOffset"), v.Get("byteLength"))
	js.CopyBytesToGo(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), length*4), bytes)
	return out
}

// float32sToJS copies a Go slice into a new Float32Array.
func float32sToJS(data []float32) js.Value {
	out := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return out
	}
	bytes := js.Global().Get("Uint8Array").New(out.Get("buffer"))
	js.CopyBytesToJS(bytes, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	return out
}
