package animation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fogleman/ease"
)

// ErrUnsupportedExpression is returned for expressions outside the
// supported whitelist.
var ErrUnsupportedExpression = errors.New("animation: unsupported expression")

// ExprKind selects the expression behavior.
type ExprKind uint8

const (
	// ExprLoopOut repeats the keyframes after the last one.
	ExprLoopOut ExprKind = iota
	// ExprLoopIn repeats the keyframes before the first one.
	ExprLoopIn
	// ExprEase replaces the value with an eased ramp over time.
	ExprEase
)

// LoopMode is the repetition style of loopIn and loopOut.
type LoopMode uint8

const (
	LoopCycle LoopMode = iota
	LoopPingPong
	LoopOffset
	LoopContinue
)

// Arith supplies arithmetic for value types that support offset loops,
// continue loops and eased ramps. A nil Arith limits expressions to
// time remapping.
type Arith[T any] struct {
	Add   func(a, b T) T
	Sub   func(a, b T) T
	Scale func(a T, s float64) T
	// FromFloats builds a value from expression literals.
	FromFloats func(v []float64) (T, bool)
}

// Expression is a parsed value expression from the supported whitelist:
// loopOut, loopIn, ease, easeIn, easeOut and linear.
type Expression struct {
	Kind  ExprKind
	Loop  LoopMode
	Count int

	// Ease parameters; times are in seconds.
	Curve  func(float64) float64
	T0, T1 float64
	V0, V1 []float64

	FrameRate float64
	Source    string
}

var (
	loopRe = regexp.MustCompile(`^loop(In|Out)\s*\(\s*(?:['"]?(\w+)['"]?)?\s*(?:,\s*(\d+))?\s*\)$`)
	easeRe = regexp.MustCompile(`^(ease|easeIn|easeOut|linear)\s*\(\s*time\s*,(.*)\)$`)
)

var easeCurves = map[string]func(float64) float64{
	"ease":    ease.InOutQuad,
	"easeIn":  ease.InQuad,
	"easeOut": ease.OutQuad,
	"linear":  ease.Linear,
}

// ParseExpression parses src. A leading "var $bm_rt =" assignment and a
// trailing semicolon are accepted. Anything else outside the whitelist
// returns ErrUnsupportedExpression.
func ParseExpression(src string, frameRate float64) (*Expression, error) {
	s := strings.TrimSpace(src)
	s = strings.TrimPrefix(s, "var ")
	if rest, ok := strings.CutPrefix(s, "$bm_rt"); ok {
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "="))
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))

	if m := loopRe.FindStringSubmatch(s); m != nil {
		e := &Expression{Kind: ExprLoopOut, FrameRate: frameRate, Source: src}
		if m[1] == "In" {
			e.Kind = ExprLoopIn
		}
		switch strings.ToLower(m[2]) {
		case "", "cycle":
			e.Loop = LoopCycle
		case "pingpong":
			e.Loop = LoopPingPong
		case "offset":
			e.Loop = LoopOffset
		case "continue":
			e.Loop = LoopContinue
		default:
			return nil, fmt.Errorf("%w: loop mode %q", ErrUnsupportedExpression, m[2])
		}
		if m[3] != "" {
			n, err := strconv.Atoi(m[3])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedExpression, src)
			}
			e.Count = n
		}
		return e, nil
	}

	if m := easeRe.FindStringSubmatch(s); m != nil {
		args, err := splitArgs(m[2])
		if err != nil || len(args) != 4 || len(args[0]) != 1 || len(args[1]) != 1 || len(args[2]) != len(args[3]) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedExpression, src)
		}
		return &Expression{
			Kind:      ExprEase,
			Curve:     easeCurves[m[1]],
			T0:        args[0][0],
			T1:        args[1][0],
			V0:        args[2],
			V1:        args[3],
			FrameRate: frameRate,
			Source:    src,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedExpression, src)
}

// splitArgs parses a comma separated list of numbers and [a, b] arrays.
func splitArgs(s string) ([][]float64, error) {
	var out [][]float64
	for s = strings.TrimSpace(s); s != ""; s = strings.TrimSpace(s) {
		var tok string
		if s[0] == '[' {
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return nil, ErrUnsupportedExpression
			}
			tok, s = s[1:end], s[end+1:]
		} else {
			end := strings.IndexByte(s, ',')
			if end < 0 {
				end = len(s)
			}
			tok, s = s[:end], s[end:]
		}
		s = strings.TrimPrefix(strings.TrimSpace(s), ",")

		var nums []float64
		for _, f := range strings.Split(tok, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, err
			}
			nums = append(nums, v)
		}
		out = append(out, nums)
	}
	return out, nil
}

func posMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

const velocityDelta = 0.01

func applyExpression[T any](e *Expression, p *Property[T], frame float64, hint int, interp Interpolator[T], ops *Arith[T]) (T, int) {
	switch e.Kind {
	case ExprEase:
		return applyEase(e, p, frame, hint, interp, ops)
	case ExprLoopOut:
		if frame <= p.LastFrame() {
			return p.resolve(frame, hint, interp)
		}
	case ExprLoopIn:
		if frame >= p.FirstFrame() {
			return p.resolve(frame, hint, interp)
		}
	}

	kfs := p.keyframes
	first, last := p.FirstFrame(), p.LastFrame()
	if e.Count > 0 && e.Count < len(kfs) {
		if e.Kind == ExprLoopOut {
			first = kfs[len(kfs)-e.Count].StartFrame
		} else {
			last = kfs[e.Count-1].EndFrame
		}
	}
	dur := last - first
	if dur <= 0 {
		return p.resolve(frame, hint, interp)
	}

	mode := e.Loop
	if ops == nil && (mode == LoopOffset || mode == LoopContinue) {
		mode = LoopCycle
	}

	cycles := math.Floor((frame - first) / dur)
	rem := posMod(frame-first, dur)
	switch mode {
	case LoopPingPong:
		if int64(cycles)%2 != 0 {
			return p.resolve(last-rem, hint, interp)
		}
		return p.resolve(first+rem, hint, interp)
	case LoopOffset:
		v, i := p.resolve(first+rem, hint, interp)
		start, _ := p.resolve(first, -1, interp)
		end, _ := p.resolve(last, -1, interp)
		return ops.Add(v, ops.Scale(ops.Sub(end, start), cycles)), i
	case LoopContinue:
		if e.Kind == ExprLoopOut {
			end, i := p.resolve(last, hint, interp)
			before, _ := p.resolve(last-velocityDelta, -1, interp)
			vel := ops.Scale(ops.Sub(end, before), 1/velocityDelta)
			return ops.Add(end, ops.Scale(vel, frame-last)), i
		}
		start, i := p.resolve(first, hint, interp)
		after, _ := p.resolve(first+velocityDelta, -1, interp)
		vel := ops.Scale(ops.Sub(after, start), 1/velocityDelta)
		return ops.Sub(start, ops.Scale(vel, first-frame)), i
	}
	return p.resolve(first+rem, hint, interp)
}

func applyEase[T any](e *Expression, p *Property[T], frame float64, hint int, interp Interpolator[T], ops *Arith[T]) (T, int) {
	if ops == nil || ops.FromFloats == nil || e.FrameRate <= 0 {
		return p.resolve(frame, hint, interp)
	}
	u := 1.0
	if e.T1 > e.T0 {
		u = clamp01((frame/e.FrameRate - e.T0) / (e.T1 - e.T0))
	} else if frame/e.FrameRate < e.T0 {
		u = 0
	}
	k := e.Curve(u)
	vals := make([]float64, len(e.V0))
	for i := range vals {
		vals[i] = e.V0[i] + (e.V1[i]-e.V0[i])*k
	}
	v, ok := ops.FromFloats(vals)
	if !ok {
		return p.resolve(frame, hint, interp)
	}
	return v, hint
}
