// Package io loads source images into engine buffers and encodes rendered
// frames.
//
// # Import
//
// [Load] and [Decode] accept PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF
// orientation is applied, and the image is resized to the dimensions chosen
// by [OptimalDimensions]: multiples of 64 pixels, close to one megapixel and
// never above two, keeping the aspect ratio within 20% where possible.
//
//	buf, err := io.Load("photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// [DecodeRaw] skips normalization for callers that manage sizing themselves.
//
// # Export
//
// [EncodePNG] writes a single frame. [GIFEncoder] quantizes frames to the
// Plan 9 palette as they arrive and writes an animated GIF at the end.
// [FrameWriter] writes a numbered PNG sequence (frame_00000.png, ...) that
// external tools can assemble into video.
package io
