// Package adapter reads controller state from a Wii U / Switch GameCube
// controller USB adapter (WUP-028 and compatibles).
package adapter

import (
	"fmt"

	"github.com/google/gousb"
)

const (
	vendorID  = 0x057E
	productID = 0x0337

	endpointIn  = 1 // 0x81
	endpointOut = 2 // 0x02
)

// startPayload switches the adapter into its polling mode. Without it the
// adapter never reports controller state.
var startPayload = []byte{0x13}

// Adapter is an open USB handle to the GameCube controller adapter.
type Adapter struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface
	done func()
	in   *gousb.InEndpoint
	out  *gousb.OutEndpoint
}

// Open finds the adapter by its fixed vendor/product ID, claims its
// interface and switches it into polling mode.
func Open() (*Adapter, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(vendorID, productID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("opening adapter: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("no GameCube adapter found (%04x:%04x)", vendorID, productID)
	}

	// The kernel HID driver may already own the interface.
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("detaching kernel driver: %w", err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claiming interface: %w", err)
	}

	a := &Adapter{ctx: ctx, dev: dev, intf: intf, done: done}

	if a.in, err = intf.InEndpoint(endpointIn); err != nil {
		a.Close()
		return nil, fmt.Errorf("opening IN endpoint: %w", err)
	}
	if a.out, err = intf.OutEndpoint(endpointOut); err != nil {
		a.Close()
		return nil, fmt.Errorf("opening OUT endpoint: %w", err)
	}

	if _, err := a.out.Write(startPayload); err != nil {
		a.Close()
		return nil, fmt.Errorf("sending start payload: %w", err)
	}

	return a, nil
}

// Read performs one interrupt transfer and returns the raw adapter report.
func (a *Adapter) Read() (State, error) {
	var s State
	n, err := a.in.Read(s[:])
	if err != nil {
		return State{}, fmt.Errorf("reading from adapter: %w", err)
	}
	if n != ReadLen {
		return State{}, fmt.Errorf("incomplete read: got %d bytes, expected %d", n, ReadLen)
	}
	return s, nil
}

// Close releases the interface and USB context.
func (a *Adapter) Close() error {
	if a.done != nil {
		a.done()
		a.done = nil
	}
	if a.dev != nil {
		a.dev.Close()
		a.dev = nil
	}
	if a.ctx != nil {
		a.ctx.Close()
		a.ctx = nil
	}
	return nil
}

func (a *Adapter) String() string {
	if a.dev == nil {
		return "GC adapter (closed)"
	}
	product, err := a.dev.Product()
	if err != nil {
		return "GC adapter"
	}
	return fmt.Sprintf("GC adapter %q", product)
}
