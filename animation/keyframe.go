package animation

import (
	"sort"

	"github.com/gogpu/gg-lottie/geom"
)

// Keyframe is one interpolation segment of an animated property.
//
// The segment covers [StartFrame, EndFrame). Hold keyframes keep StartValue
// for the whole segment. OutTangent and InTangent are spatial tangents
// relative to StartValue and EndValue; they are only used by point values.
type Keyframe[T any] struct {
	StartValue T
	EndValue   T
	StartFrame float64
	EndFrame   float64
	Easing     Easing
	Hold       bool

	OutTangent geom.Point
	InTangent  geom.Point

	spatial *geom.PathMeasure
}

// contains reports whether frame lies in the segment.
func (k *Keyframe[T]) contains(frame float64) bool {
	return frame >= k.StartFrame && frame < k.EndFrame
}

// fraction returns the eased progress of frame through the segment.
func (k *Keyframe[T]) fraction(frame float64) float64 {
	span := k.EndFrame - k.StartFrame
	if span <= 0 {
		return 1
	}
	return k.Easing.Apply(clamp01((frame - k.StartFrame) / span))
}

// Entry is one keyframe as written in a document: a time, a start value
// and, in older documents, an explicit end value.
type Entry[T any] struct {
	Time  float64
	Start *T
	End   *T
	Hold  bool

	// Out and In are the easing control points. A nil pointer means linear.
	Out, In *geom.Point

	OutTangent geom.Point
	InTangent  geom.Point
}

// BuildKeyframes turns document entries into contiguous keyframes.
//
// Entries are ordered by time. Segment i starts at entry i and ends at
// entry i+1; its end value is the entry's explicit end value, otherwise the
// next entry's start value, otherwise its own start value. The final entry
// only contributes the end boundary. A single entry produces one zero-length
// keyframe. Entries without any value are skipped.
func BuildKeyframes[T any](entries []Entry[T]) []Keyframe[T] {
	if len(entries) == 0 {
		return nil
	}
	sorted := make([]Entry[T], len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	var zero T
	valueOf := func(e *Entry[T], fallback T) T {
		if e.Start != nil {
			return *e.Start
		}
		return fallback
	}

	if len(sorted) == 1 {
		v := valueOf(&sorted[0], zero)
		return []Keyframe[T]{{
			StartValue: v, EndValue: v,
			StartFrame: sorted[0].Time, EndFrame: sorted[0].Time,
			Hold: true,
		}}
	}

	kfs := make([]Keyframe[T], 0, len(sorted)-1)
	prev := zero
	for i := 0; i < len(sorted)-1; i++ {
		cur, next := &sorted[i], &sorted[i+1]
		if cur.Start == nil && i > 0 {
			// Legacy documents leave the start implied by the previous end.
			cur.Start = &prev
		}
		start := valueOf(cur, zero)
		end := start
		switch {
		case cur.End != nil:
			end = *cur.End
		case next.Start != nil:
			end = *next.Start
		}
		kf := Keyframe[T]{
			StartValue: start,
			EndValue:   end,
			StartFrame: cur.Time,
			EndFrame:   next.Time,
			Hold:       cur.Hold,
			OutTangent: cur.OutTangent,
			InTangent:  cur.InTangent,
		}
		if cur.Out != nil && cur.In != nil {
			kf.Easing = NewEasing(*cur.Out, *cur.In)
		}
		kfs = append(kfs, kf)
		prev = end
	}
	return kfs
}
