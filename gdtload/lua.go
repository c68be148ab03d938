package gdtload

import (
	"math"

	"github.com/npillmayer/ostools/errs"
	"github.com/npillmayer/ostools/gdt"
	lua "github.com/yuin/gopher-lua"
)

// ParseLua runs a layout script and collects the layout it describes.
// Scripts run with the base, table, string and math libraries only.
func ParseLua(script string) (*Layout, error) {
	const op = "gdtload.ParseLua"
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	layout := &Layout{}
	L.SetGlobal("entry", L.NewFunction(func(L *lua.LState) int {
		layout.Entries = append(layout.Entries, luaEntry(L, L.CheckTable(1)))
		return 0
	}))
	L.SetGlobal("descriptor", L.NewFunction(func(L *lua.LState) int {
		layout.Descriptor = true
		return 0
	}))
	L.SetGlobal("selectors", L.NewFunction(func(L *lua.LState) int {
		layout.Selectors = true
		return 0
	}))
	if err := L.DoString(script); err != nil {
		return nil, errs.Wrap(errs.KindInvalidFormat, op, err)
	}
	tracer().Debugf("layout script defined %d entries", len(layout.Entries))
	return layout, nil
}

// FromLua builds the table described by a Lua layout script.
func FromLua(script string) (*gdt.Table, error) {
	l, err := ParseLua(script)
	if err != nil {
		return nil, err
	}
	return Build(l)
}

func luaEntry(L *lua.LState, t *lua.LTable) Entry {
	e := Entry{
		Name: lua.LVAsString(t.RawGetString("name")),
		Base: uint32(luaNumber(L, t, "base", math.MaxUint32)),
	}
	if v := t.RawGetString("limit"); v != lua.LNil {
		limit := uint16(luaNumber(L, t, "limit", math.MaxUint16))
		e.Limit = &limit
	}
	if a, ok := t.RawGetString("access").(*lua.LTable); ok {
		e.Access = Access{
			Present:    lua.LVAsBool(a.RawGetString("present")),
			Ring:       uint8(luaNumber(L, a, "ring", math.MaxUint8)),
			Descriptor: lua.LVAsBool(a.RawGetString("descriptor")),
			Executable: lua.LVAsBool(a.RawGetString("executable")),
			DC:         lua.LVAsBool(a.RawGetString("dc")),
			RW:         lua.LVAsBool(a.RawGetString("rw")),
			Accessed:   lua.LVAsBool(a.RawGetString("accessed")),
		}
		if a.RawGetString("raw") != lua.LNil {
			raw := uint8(luaNumber(L, a, "raw", math.MaxUint8))
			e.Access.Raw = &raw
		}
	}
	if f, ok := t.RawGetString("flags").(*lua.LTable); ok {
		e.Flags = &Flags{
			Granularity: lua.LVAsBool(f.RawGetString("granularity")),
			Size:        lua.LVAsBool(f.RawGetString("size")),
			Long:        lua.LVAsBool(f.RawGetString("long")),
		}
		if f.RawGetString("raw") != lua.LNil {
			raw := uint8(luaNumber(L, f, "raw", math.MaxUint8))
			e.Flags.Raw = &raw
		}
	}
	return e
}

// luaNumber reads a non-negative integer field, 0 if absent. Values which
// are not integers in 0…maxValue raise a Lua error.
func luaNumber(L *lua.LState, t *lua.LTable, key string, maxValue uint64) uint64 {
	switch v := t.RawGetString(key).(type) {
	case lua.LNumber:
		n := float64(v)
		if n < 0 || n > float64(maxValue) || n != math.Trunc(n) {
			L.RaiseError("field %q must be an integer in 0…%d, is %v", key, maxValue, v)
		}
		return uint64(n)
	case *lua.LNilType:
		return 0
	default:
		L.RaiseError("field %q must be a number, is %s", key, v.Type())
		return 0
	}
}
