// Package quantum maps raw 8 and 16 bit pixel intensities onto an 8 bit
// display range.
//
// A Strategy is built from a Definition (curve family, coefficient, output
// codomain, bit resolution and the noise reduction policy) and a PixelType.
// SetExtent fixes the global bounds of the channel, SetWindow narrows the
// contrast range, and every change rebuilds a lookup table so Quantize is a
// bounds check and an index:
//
//	def, err := quantum.NewDefinition(255, 0, 255, false,
//		quantum.WithFamily(quantum.Logarithmic, 1))
//	s, err := quantum.NewStrategy(def, quantum.Uint16)
//	err = s.SetExtent(0, 4095)
//	err = s.SetWindow(200, 3000)
//	v, err := s.QuantizeInt(1500)
//
// A Strategy has no internal locking. Mutations must not overlap with other
// calls; once configured it may be read by any number of goroutines.
package quantum
