// SPDX-License-Identifier: EPL-2.0

// Package device defines the output-device side of the mixer: a Device
// negotiates a sample format, owns the gate that serializes owner-side
// mutation against its real-time thread, and calls a Callback whenever it
// needs another buffer.
//
// Backends:
//   - Headless (this package): pumped by hand or by a clock, writes the
//     rendered stream to any io.Writer. Used by tests and offline rendering.
//   - otodev: ebitengine/oto v3.
//   - beepdev: gopxl/beep v2 speaker.
package device
