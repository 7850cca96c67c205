// Package kfmt implements formatted output for the kernel. The formatting
// routines avoid the Go allocator so they can run before the runtime is set up
// and from the panic path.
package kfmt

import (
	"io"
	"unsafe"
)

// maxBufSize defines the buffer size for formatting numbers.
const maxBufSize = 32

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	numFmtBuf = []byte("012345678901234567890123456789012")

	// singleByte is a shared buffer for passing single characters to doWrite.
	singleByte = []byte(" ")

	// earlyPrintBuffer captures Printf output until an output sink is
	// attached.
	earlyPrintBuffer ringBuffer

	// outputSink receives the output of Printf and Println. While nil,
	// output is captured by earlyPrintBuffer.
	outputSink io.Writer
)

// LockedSink is implemented by output sinks that serialize their writers.
// Printf and Println call Lock once per invocation and send all of their
// output to the returned writer, so output of concurrent callers never
// interleaves.
type LockedSink interface {
	io.Writer

	// Lock blocks until the caller has exclusive access to the sink and
	// returns a writer that may be used until Unlock is called.
	Lock() io.Writer

	// Unlock releases the access obtained by Lock.
	Unlock()
}

// SetOutputSink sets the target for calls to Printf and Println to w and
// replays any output accumulated in the early print buffer into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// GetOutputSink returns the current target for calls to Printf.
func GetOutputSink() io.Writer {
	return outputSink
}

// Printf provides a minimal Printf implementation that does not allocate
// memory. It supports the following subset of the fmt.Printf verbs:
//
//	%s  the uninterpreted bytes of a string or byte slice
//	%d  base 10 integer
//	%o  base 8 integer
//	%x  base 16 integer, lower-case a-f
//	%t  "true" or "false"
//	%%  a literal percent sign
//
// A decimal width may precede the verb. Strings and base-10 integers are
// left-padded with spaces; base-8 and base-16 integers are left-padded with
// zeroes. Pointers (%p) are not supported as they would pull in reflect.
//
// The output is sent to the active output sink as a single locked write when
// the sink implements LockedSink.
func Printf(format string, args ...interface{}) {
	if sink, ok := outputSink.(LockedSink); ok {
		w := sink.Lock()
		defer sink.Unlock()
		Fprintf(w, format, args...)
		return
	}

	Fprintf(outputSink, format, args...)
}

// Println writes the default representation of each argument, separated by a
// space and followed by a newline, to the active output sink. Strings and
// byte slices are formatted as %s, integers as %d and booleans as %t.
func Println(args ...interface{}) {
	if sink, ok := outputSink.(LockedSink); ok {
		w := sink.Lock()
		defer sink.Unlock()
		Fprintln(w, args...)
		return
	}

	Fprintln(outputSink, args...)
}

// Fprintln behaves like Println but writes to w.
func Fprintln(w io.Writer, args ...interface{}) {
	for i, arg := range args {
		if i > 0 {
			singleByte[0] = ' '
			doWrite(w, singleByte)
		}

		switch arg.(type) {
		case bool:
			fmtBool(w, arg)
		case string, []byte:
			fmtString(w, arg, 0)
		default:
			fmtInt(w, arg, 10, 0)
		}
	}

	singleByte[0] = '\n'
	doWrite(w, singleByte)
}

// Fprintf behaves like Printf but writes to w.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		nextCh                       byte
		nextArgIndex                 int
		blockStart, blockEnd, padLen int
		fmtLen                       = len(format)
	)

	for blockEnd < fmtLen {
		nextCh = format[blockEnd]
		if nextCh != '%' {
			blockEnd++
			continue
		}

		fmtLiteral(w, format[blockStart:blockEnd])

		// Scan til we hit the format character
		padLen = 0
		blockEnd++
	parseFmt:
		for ; blockEnd < fmtLen; blockEnd++ {
			nextCh = format[blockEnd]
			switch {
			case nextCh == '%':
				singleByte[0] = '%'
				doWrite(w, singleByte)
				break parseFmt
			case nextCh >= '0' && nextCh <= '9':
				padLen = (padLen * 10) + int(nextCh-'0')
				continue
			case nextCh == 'd' || nextCh == 'x' || nextCh == 'o' || nextCh == 's' || nextCh == 't':
				if nextArgIndex >= len(args) {
					doWrite(w, errMissingArg)
					break parseFmt
				}

				switch nextCh {
				case 'o':
					fmtInt(w, args[nextArgIndex], 8, padLen)
				case 'd':
					fmtInt(w, args[nextArgIndex], 10, padLen)
				case 'x':
					fmtInt(w, args[nextArgIndex], 16, padLen)
				case 's':
					fmtString(w, args[nextArgIndex], padLen)
				case 't':
					fmtBool(w, args[nextArgIndex])
				}

				nextArgIndex++
				break parseFmt
			}

			// reached end of formatting string without finding a verb
			doWrite(w, errNoVerb)
		}
		blockStart, blockEnd = blockEnd+1, blockEnd+1
	}

	if blockStart < fmtLen {
		fmtLiteral(w, format[blockStart:])
	}

	for ; nextArgIndex < len(args); nextArgIndex++ {
		doWrite(w, errExtraArg)
	}
}

// fmtLiteral copies a literal section of the format string to w. Converting
// the string to a byte slice would allocate so it is written one byte at a
// time.
func fmtLiteral(w io.Writer, s string) {
	for i := 0; i < len(s); i++ {
		singleByte[0] = s[i]
		doWrite(w, singleByte)
	}
}

// fmtBool prints a formatted version of boolean value v.
func fmtBool(w io.Writer, v interface{}) {
	bVal, ok := v.(bool)
	switch {
	case !ok:
		doWrite(w, errWrongArgType)
	case bVal:
		doWrite(w, trueValue)
	default:
		doWrite(w, falseValue)
	}
}

// fmtString prints a formatted version of string or []byte value v, applying
// the padding specified by padLen.
func fmtString(w io.Writer, v interface{}, padLen int) {
	switch castedVal := v.(type) {
	case string:
		fmtRepeat(w, ' ', padLen-len(castedVal))
		fmtLiteral(w, castedVal)
	case []byte:
		fmtRepeat(w, ' ', padLen-len(castedVal))
		doWrite(w, castedVal)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtRepeat writes count bytes with value ch.
func fmtRepeat(w io.Writer, ch byte, count int) {
	singleByte[0] = ch
	for i := 0; i < count; i++ {
		doWrite(w, singleByte)
	}
}

// fmtInt prints out a formatted version of v in the requested base, applying
// the padding specified by padLen. All built-in signed and unsigned integer
// types are supported.
func fmtInt(w io.Writer, v interface{}, base, padLen int) {
	var (
		sval             int64
		uval             uint64
		remainder        uint64
		left, right, end int
		divider          = uint64(base)
		padCh            = byte('0')
	)

	if padLen >= maxBufSize {
		padLen = maxBufSize - 1
	}

	// Only base-10 values are padded with spaces
	if base == 10 {
		padCh = ' '
	}

	switch t := v.(type) {
	case uint8:
		uval = uint64(t)
	case uint16:
		uval = uint64(t)
	case uint32:
		uval = uint64(t)
	case uint64:
		uval = t
	case uint:
		uval = uint64(t)
	case uintptr:
		uval = uint64(t)
	case int8:
		sval = int64(t)
	case int16:
		sval = int64(t)
	case int32:
		sval = int64(t)
	case int64:
		sval = t
	case int:
		sval = int64(t)
	default:
		doWrite(w, errWrongArgType)
		return
	}

	if sval < 0 {
		uval = uint64(-sval)
	} else if sval > 0 {
		uval = uint64(sval)
	}

	// Emit digits in reverse order
	for right < maxBufSize {
		remainder = uval % divider
		if remainder < 10 {
			numFmtBuf[right] = byte(remainder) + '0'
		} else {
			numFmtBuf[right] = byte(remainder-10) + 'a'
		}

		right++

		uval /= divider
		if uval == 0 {
			break
		}
	}

	for ; right-left < padLen; right++ {
		numFmtBuf[right] = padCh
	}

	// The sign replaces the leftmost padding space if there is one;
	// otherwise it is appended as an extra character.
	if sval < 0 {
		for end = right - 1; numFmtBuf[end] == ' '; end-- {
		}

		if end == right-1 {
			right++
		}

		numFmtBuf[end+1] = '-'
	}

	end = right
	for right = right - 1; left < right; left, right = left+1, right-1 {
		numFmtBuf[left], numFmtBuf[right] = numFmtBuf[right], numFmtBuf[left]
	}

	doWrite(w, numFmtBuf[0:end])
}

// doWrite hides p from escape analysis. Passing p straight to an io.Writer of
// unknown type makes the compiler move it to the heap, which would make every
// Printf call allocate.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
	} else {
		earlyPrintBuffer.Write(p)
	}
}

// noEscape hides a pointer from escape analysis. Copied from runtime/stubs.go.
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
