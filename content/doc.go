// Package content turns the shape items of a shape layer into a render
// tree.
//
// Items are read in reverse declared order. Paints (fills and strokes) and
// trims accumulate as the walk goes up the list, and every path-producing
// item below them in the list becomes a source of each accumulated paint
// and is cut by each accumulated trim. Nested groups inherit the
// accumulators of their parent. A merge item combines the geometry of the
// items declared before it into one path, and a repeater draws the items
// declared before it once per copy.
//
// Paints are drawn bottom to top: the item declared last is drawn first.
// A paint draws all of its sources with a single fill or stroke.
package content
