package serial

import "io"

// Device is a device that can be attached to the Controller. Exchange
// receives the byte shifted out of the Game Boy and returns the byte
// shifted in.
type Device interface {
	Exchange(out byte) (in byte)
}

// nullDevice is an implementation of Device that
// simply returns 0xFF, as the data line idles high
// when no device is attached to the Controller.
type nullDevice struct{}

func (n nullDevice) Exchange(byte) byte { return 0xFF }

// WriterDevice copies every byte it receives to an io.Writer. Test
// ROMs use this to report their results as text.
type WriterDevice struct {
	W io.Writer
}

// Exchange writes out to the writer and returns 0xFF. Write errors are
// dropped, a disconnected cable is not an error the Game Boy can see.
func (d WriterDevice) Exchange(out byte) byte {
	_, _ = d.W.Write([]byte{out})
	return 0xFF
}
