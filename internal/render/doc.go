// Package render turns a painted growth.Canvas into an image and writes it out.
//
// It covers the steps after the growth engine finishes:
//   - conversion of the canvas to an opaque *image.NRGBA
//   - optional post-processing (Gaussian smoothing, nearest-neighbour scaling)
//   - encoding to a file or to a base64 payload for the servers
//   - a quantised palette summary of the result
//
// # Output Formats
//
// The format is chosen from the file extension: .png, .jpg/.jpeg, .gif,
// .tif/.tiff and .bmp are supported. Any other extension is an error.
//
// # Coordinate System
//
// Pixel (x, y) of the image is cell (x, y) of the canvas, origin at the
// top-left corner.
package render
