package config

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
)

// ErrRC wraps rc script failures.
var ErrRC = errors.New("rc script error")

// MapFunc installs a key mapping for one mode.
type MapFunc func(m mode.Mode, lhs, rhs []key.Event)

// UnmapFunc removes a key mapping for one mode.
type UnmapFunc func(m mode.Mode, lhs []key.Event)

// Loader runs rc scripts against an option set and mapping callbacks.
type Loader struct {
	opts  *Options
	mapFn MapFunc
	unFn  UnmapFunc
}

// NewLoader creates an rc loader. The mapping callbacks may be nil
// when the caller only wants options.
func NewLoader(opts *Options, mapFn MapFunc, unFn UnmapFunc) *Loader {
	return &Loader{opts: opts, mapFn: mapFn, unFn: unFn}
}

// LoadFile executes an rc file. A missing file is not an error.
func (l *Loader) LoadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRC, err)
	}
	return l.LoadString(string(src))
}

// LoadString executes rc source.
func (l *Loader) LoadString(src string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)

	L.SetGlobal("set", L.NewFunction(l.luaSet))
	L.SetGlobal("map", L.NewFunction(l.luaMap))
	L.SetGlobal("unmap", L.NewFunction(l.luaUnmap))

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("%w: %v", ErrRC, err)
	}
	return nil
}

// openSafeLibraries opens only side-effect-free standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (l *Loader) luaSet(L *lua.LState) int {
	name := L.CheckString(1)
	var value any
	switch v := L.CheckAny(2).(type) {
	case lua.LNumber:
		value = float64(v)
	case lua.LBool:
		value = bool(v)
	case lua.LString:
		value = string(v)
	default:
		L.RaiseError("set: unsupported value type for %s", name)
		return 0
	}
	if err := l.opts.Set(name, value); err != nil {
		L.RaiseError("set: %v", err)
	}
	return 0
}

func (l *Loader) luaMap(L *lua.LState) int {
	modes, lhs, rhs := l.checkMapping(L, true)
	if l.mapFn == nil {
		return 0
	}
	for _, m := range modes {
		l.mapFn(m, lhs, rhs)
	}
	return 0
}

func (l *Loader) luaUnmap(L *lua.LState) int {
	modes, lhs, _ := l.checkMapping(L, false)
	if l.unFn == nil {
		return 0
	}
	for _, m := range modes {
		l.unFn(m, lhs)
	}
	return 0
}

// checkMapping validates the shared arguments of map and unmap.
func (l *Loader) checkMapping(L *lua.LState, withRHS bool) ([]mode.Mode, []key.Event, []key.Event) {
	modeName := L.CheckString(1)
	lhsSpec := L.CheckString(2)

	modes, err := modesFor(modeName)
	if err != nil {
		L.RaiseError("map: %v", err)
	}
	lhs, err := key.ParseSequence(lhsSpec)
	if err != nil {
		L.RaiseError("map: bad lhs %q: %v", lhsSpec, err)
	}

	var rhs []key.Event
	if withRHS {
		rhsSpec := L.CheckString(3)
		rhs, err = key.ParseSequence(rhsSpec)
		if err != nil {
			L.RaiseError("map: bad rhs %q: %v", rhsSpec, err)
		}
	}
	return modes, lhs, rhs
}

// modesFor expands a mode name; "visual" covers all three variants.
func modesFor(name string) ([]mode.Mode, error) {
	switch name {
	case "normal", "n":
		return []mode.Mode{mode.Normal}, nil
	case "insert", "i":
		return []mode.Mode{mode.Insert}, nil
	case "visual", "v":
		return []mode.Mode{mode.VisualChar, mode.VisualLine, mode.VisualBlock}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", name)
	}
}
