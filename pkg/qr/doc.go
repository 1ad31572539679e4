// Package qr encodes strings into QR module grids.
//
// A [Matrix] is the square grid of dark and light modules without any quiet
// zone; renderers in package render add the border themselves. The default
// [Encoder] is [Skip2Encoder], built on github.com/skip2/go-qrcode, which
// picks the smallest version that fits and the best mask.
//
// A version range can be forced for scanners or print layouts that need a
// fixed symbol size:
//
//	enc := qr.Skip2Encoder{MinVersion: 2, MaxVersion: 15}
//	m, err := enc.Encode("WIFI:T:WPA;S:test;P:test;;", qr.High)
package qr
