// Package recording captures drawing operations as typed commands.
//
// A Recorder implements surface.Surface. Instead of rasterizing, it stores
// each call as a command together with the transformation matrix in effect,
// so a frame can be inspected without depending on a rasterizer:
//
//	rec := recording.NewRecorder()
//	drawable.Draw(rec, geom.Identity(), 1)
//	r := rec.FinishRecording()
//	for _, f := range r.Fills() {
//		fmt.Println(f.Path.BoundingBox(), f.Style.Alpha)
//	}
//
// A Recording can be replayed onto any other surface with Playback.
//
// The design follows Cairo's recording surface: typed command structs for
// inspectability, paths and images kept in a resource pool and referenced
// by index.
package recording
