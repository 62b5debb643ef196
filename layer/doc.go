// Package layer builds the compositing tree of a composition and draws it.
//
// A [Tree] holds the layers of one composition or precomposition in an
// arena. Parents are resolved to arena indices when the tree is built and a
// parent cycle fails the build with [ErrParentCycle]. Layers draw bottom to
// top: the last layer in the document is drawn first.
//
// A layer with masks or a matte is drawn into an offscreen layer. Masks are
// combined into an isolation layer that is composited onto the content with
// a destination-in blend. A matte source is drawn into its own offscreen
// layer and composited with destination-in, or destination-out when the
// matte is inverted.
package layer
