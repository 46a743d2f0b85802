package spec

import (
	verr "github.com/nihei9/ll1/error"
	"github.com/nihei9/ll1/grammar/symbol"
	gspec "github.com/nihei9/ll1/spec/grammar"
)

// Definition converts a syntax tree into a grammar definition. Directives are interpreted here:
//
//	#name <name>;            the name of the grammar
//	#start <non-terminal>;   the start symbol (the LHS of the first production by default)
//	#terminals <name>...;    terminals produced by an external lexer
//	#skip <terminal>...;     terminals whose tokens the lexer discards
//
// A production consisting of a single pattern defines a terminal, and the others define rules.
func (root *RootNode) Definition() (*gspec.Definition, error) {
	def := &gspec.Definition{}
	var errs verr.SpecErrors
	addErr := func(pos Position, cause error, detail string) {
		errs = append(errs, &verr.SpecError{
			Cause:  cause,
			Detail: detail,
			Row:    pos.Row,
			Col:    pos.Col,
		})
	}

	seen := map[string]struct{}{}
	var skips []*ParameterNode
	for _, dir := range root.Directives {
		switch dir.Name {
		case "name", "start":
			if _, ok := seen[dir.Name]; ok {
				addErr(dir.Pos, synErrDuplicateDir, dir.Name)
				continue
			}
			seen[dir.Name] = struct{}{}
			if len(dir.Parameters) != 1 {
				addErr(dir.Pos, synErrDirInvalidParam, "'"+dir.Name+"' takes just one ID parameter")
				continue
			}
			if dir.Name == "name" {
				def.Name = dir.Parameters[0].ID
			} else {
				def.Start = dir.Parameters[0].ID
			}
		case "terminals":
			if len(dir.Parameters) == 0 {
				addErr(dir.Pos, synErrDirInvalidParam, "'terminals' takes at least one ID parameter")
				continue
			}
			for _, param := range dir.Parameters {
				def.Terminals = append(def.Terminals, &gspec.TerminalDef{
					Name: param.ID,
					Row:  param.Pos.Row,
					Col:  param.Pos.Col,
				})
			}
		case "skip":
			if len(dir.Parameters) == 0 {
				addErr(dir.Pos, synErrDirInvalidParam, "'skip' takes at least one ID parameter")
				continue
			}
			skips = append(skips, dir.Parameters...)
		default:
			addErr(dir.Pos, synErrDirInvalidName, dir.Name)
		}
	}

	for _, prod := range root.Productions {
		if prod.isTerminal() {
			def.Terminals = append(def.Terminals, &gspec.TerminalDef{
				Name:    prod.LHS,
				Pattern: prod.RHS[0].Elements[0].Pattern,
				Row:     prod.Pos.Row,
				Col:     prod.Pos.Col,
			})
			continue
		}

		rule := &gspec.RuleDef{
			LHS: prod.LHS,
			Row: prod.Pos.Row,
			Col: prod.Pos.Col,
		}
		for _, alt := range prod.RHS {
			syms := make([]string, 0, len(alt.Elements))
			for _, elem := range alt.Elements {
				switch {
				case elem.Pattern != "":
					addErr(elem.Pos, synErrPatternInRule, prod.LHS)
				case elem.Epsilon:
					syms = append(syms, symbol.NameEpsilon)
				default:
					syms = append(syms, elem.ID)
				}
			}
			rule.Alternatives = append(rule.Alternatives, syms)
		}
		def.Rules = append(def.Rules, rule)
	}

	for _, param := range skips {
		found := false
		for _, term := range def.Terminals {
			if term.Name == param.ID {
				term.Skip = true
				found = true
				break
			}
		}
		if !found {
			addErr(param.Pos, synErrDirInvalidParam, "'skip' takes only terminals: "+param.ID)
		}
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs
	}
	return def, nil
}
