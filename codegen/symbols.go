package codegen

import (
	"encoding/json"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/ztrue/tracerr"
)

// SymbolsGlobal is the name of the NUL terminated JSON symbol table embedded
// in every compiled module.
const SymbolsGlobal = "__trion_symbols"

type SymbolTable struct {
	Package   string            `json:"package"`
	Variables map[string]string `json:"variables"`
	Constants map[string]string `json:"constants"`
}

// symbols describes the top level bindings left in scope after lowering.
func (c *ctx) symbols(pkg string) SymbolTable {
	t := SymbolTable{
		Package:   pkg,
		Variables: map[string]string{},
		Constants: map[string]string{},
	}
	for name, thing := range c.names[0] {
		switch v := thing.(type) {
		case LLVMMutableValue:
			t.Variables[name] = typeName(v.elem)
		case LLVMValue:
			t.Constants[name] = typeName(v.Type())
		}
	}
	return t
}

func registerSymbols(m *ir.Module, t SymbolTable) {
	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}

	g := m.NewGlobalDef(SymbolsGlobal, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
}

// ModuleSymbols extracts the symbol table from a lowered module.
func ModuleSymbols(m *ir.Module) (SymbolTable, error) {
	for _, g := range m.Globals {
		if g.Name() != SymbolsGlobal {
			continue
		}
		arr, ok := g.Init.(*constant.CharArray)
		if !ok || len(arr.X) == 0 {
			break
		}
		return ParseSymbols(string(arr.X[:len(arr.X)-1]))
	}
	return SymbolTable{}, tracerr.Errorf("module has no %s global", SymbolsGlobal)
}

func ParseSymbols(data string) (t SymbolTable, err error) {
	if err = json.Unmarshal([]byte(data), &t); err != nil {
		err = tracerr.Wrap(err)
	}
	return
}
