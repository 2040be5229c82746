package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/holeplan/pkg/geom"
	"github.com/chazu/holeplan/pkg/model"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpRef is returned by the element builtins so that user code can bind
// an element and hand it to another one, e.g. a level to a wall.
type sexpRef struct {
	kind string
	id   string
}

func (r *sexpRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", r.kind, r.id)
}
func (r *sexpRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// name returns the leading positional argument as an element name.
func (pa kwArgs) name(fn string) (string, error) {
	if len(pa.positional) < 1 {
		return "", fmt.Errorf("%s requires a name argument", fn)
	}
	n, err := toString(pa.positional[0])
	if err != nil {
		return "", fmt.Errorf("%s: name: %w", fn, err)
	}
	if n == "" {
		return "", fmt.Errorf("%s: name must not be empty", fn)
	}
	return n, nil
}

// float reads an optional numeric keyword, leaving dst alone when absent.
func (pa kwArgs) float(fn, key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	*dst = f
	return nil
}

// vec3 reads a required vec3 keyword.
func (pa kwArgs) vec3(fn, key string) (geom.Vec3, error) {
	v, ok := pa.kw[key]
	if !ok {
		return geom.Vec3{}, fmt.Errorf("%s: missing :%s", fn, key)
	}
	vec, err := toVec3(v)
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return vec, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toLevelID accepts a level name or the value returned by (level ...).
func toLevelID(s zygo.Sexp) (model.LevelID, error) {
	switch v := s.(type) {
	case *sexpRef:
		if v.kind != "level" {
			return "", fmt.Errorf("expected level, got %s %q", v.kind, v.id)
		}
		return model.LevelID(v.id), nil
	case *zygo.SexpStr:
		return model.LevelID(v.S), nil
	}
	return "", fmt.Errorf("expected level name, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins add elements to s as they are evaluated.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *model.Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: geom.V(x, y, z)}, nil
	})

	// -----------------------------------------------------------------------
	// (level "L1" :elevation 0 :name "Ground floor")
	// -----------------------------------------------------------------------
	env.AddFunction("level", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		id, err := pa.name("level")
		if err != nil {
			return zygo.SexpNull, err
		}

		l := model.Level{ID: model.LevelID(id)}
		if err := pa.float("level", "elevation", &l.Elevation); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["name"]; ok {
			n, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("level: name: %w", err)
			}
			l.Name = n
		}

		if err := s.AddLevel(l); err != nil {
			return zygo.SexpNull, fmt.Errorf("level: %w", err)
		}
		return &sexpRef{kind: "level", id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (wall "W1" :level "L1" :from (vec3 0 0 0) :to (vec3 10 0 0)
	//       :thickness 0.2 :height 3)
	// -----------------------------------------------------------------------
	env.AddFunction("wall", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		id, err := pa.name("wall")
		if err != nil {
			return zygo.SexpNull, err
		}

		w := model.Wall{ID: model.WallID(id)}
		if v, ok := pa.kw["level"]; ok {
			lvl, err := toLevelID(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("wall: level: %w", err)
			}
			w.Level = lvl
		}
		if w.Start, err = pa.vec3("wall", "from"); err != nil {
			return zygo.SexpNull, err
		}
		if w.End, err = pa.vec3("wall", "to"); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("wall", "thickness", &w.Thickness); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("wall", "height", &w.Height); err != nil {
			return zygo.SexpNull, err
		}

		if err := s.AddWall(w); err != nil {
			return zygo.SexpNull, fmt.Errorf("wall: %w", err)
		}
		return &sexpRef{kind: "wall", id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (duct "D1" :from (vec3 0 0 1) :to (vec3 10 0 1) :width 0.5 :height 0.3)
	// -----------------------------------------------------------------------
	env.AddFunction("duct", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var sec model.RectSection
		if err := pa.float("duct", "width", &sec.Width); err != nil {
			return zygo.SexpNull, err
		}
		if err := pa.float("duct", "height", &sec.Height); err != nil {
			return zygo.SexpNull, err
		}
		return addConduit(s, "duct", pa, sec)
	})

	// -----------------------------------------------------------------------
	// (pipe "P1" :from (vec3 0 0 1) :to (vec3 10 0 1) :diameter 0.2)
	// -----------------------------------------------------------------------
	env.AddFunction("pipe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var sec model.RoundSection
		if err := pa.float("pipe", "diameter", &sec.Diameter); err != nil {
			return zygo.SexpNull, err
		}
		return addConduit(s, "pipe", pa, sec)
	})
}

// addConduit finishes a duct or pipe: both take a name and :from/:to.
func addConduit(s *model.Scene, fn string, pa kwArgs, sec model.CrossSection) (zygo.Sexp, error) {
	id, err := pa.name(fn)
	if err != nil {
		return zygo.SexpNull, err
	}
	from, err := pa.vec3(fn, "from")
	if err != nil {
		return zygo.SexpNull, err
	}
	to, err := pa.vec3(fn, "to")
	if err != nil {
		return zygo.SexpNull, err
	}

	c := model.NewConduit(model.ConduitID(id), from, to, sec)
	if err := s.AddConduit(c); err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
	}
	return &sexpRef{kind: fn, id: id}, nil
}
