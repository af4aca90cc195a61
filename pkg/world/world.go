// Package world loads scenario files: the nominal type hierarchy, the
// declaration table, and the compilation units a checker run traverses.
package world

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/calyx-lang/calyx/pkg/resolver"
	"github.com/calyx-lang/calyx/pkg/types"
)

// World is one loaded scenario: everything the checker needs for a run.
type World struct {
	Hierarchy *types.Hierarchy
	Overloads map[string]*resolver.OverloadSet
	Units     []*Unit
}

// Unit is one compilation unit: its global/file contexts (the bottom frames
// of the unit's receiver stack) and a tree of nested receiver scopes.
type Unit struct {
	Name    string
	Globals []resolver.ContextFrame
	Scopes  []*Scope
	Calls   []Call
}

// Scope is one scope-introducing construct. Entering it pushes its context
// frame; leaving it pops.
type Scope struct {
	Context resolver.ContextFrame
	Calls   []Call
	Scopes  []*Scope
}

// Call is a call site as written in a world file. AmbientExplicit marks an
// explicit receiver that names an enclosing ambient frame rather than a
// fresh call-site value; the checker fills in its stack position during
// traversal.
type Call struct {
	resolver.CallSite
	AmbientExplicit bool
}

type worldDoc struct {
	Types        []typeDoc `yaml:"types"`
	Declarations []declDoc `yaml:"declarations"`
	Units        []unitDoc `yaml:"units"`
}

type typeDoc struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params"`
	Extends []string `yaml:"extends"`
}

type declDoc struct {
	Name      string   `yaml:"name"`
	Mode      string   `yaml:"mode"`
	Receivers []string `yaml:"receivers"`
	Params    []string `yaml:"params"`
	Site      string   `yaml:"site"`
}

type unitDoc struct {
	Name    string     `yaml:"name"`
	Globals []frameDoc `yaml:"globals"`
	Scopes  []scopeDoc `yaml:"scopes"`
	Calls   []callDoc  `yaml:"calls"`
}

type frameDoc struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

type scopeDoc struct {
	Context frameDoc   `yaml:"context"`
	Calls   []callDoc  `yaml:"calls"`
	Scopes  []scopeDoc `yaml:"scopes"`
}

type callDoc struct {
	Name     string       `yaml:"name"`
	Explicit *explicitDoc `yaml:"explicit"`
	Site     string       `yaml:"site"`
}

type explicitDoc struct {
	Type    string `yaml:"type"`
	Value   string `yaml:"value"`
	Ambient bool   `yaml:"ambient"`
}

// Load parses and validates a world file. Declaration-level errors are
// accumulated so every bad declaration is reported in one pass.
func Load(r io.Reader, filename string) (*World, error) {
	var doc worldDoc

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, resolver.FileError{File: filename, Err: fmt.Errorf("failed to parse world: %w", err)}
	}

	w, err := build(&doc)
	if err != nil {
		return nil, resolver.FileError{File: filename, Err: err}
	}

	return w, nil
}

func build(doc *worldDoc) (*World, error) {
	errs := resolver.NewErrorSet()

	hierarchy := types.NewHierarchy()
	for _, td := range doc.Types {
		params := paramSet(td.Params)

		supers := make([]types.Type, 0, len(td.Extends))
		for _, expr := range td.Extends {
			super, err := ParseType(expr, params)
			if err != nil {
				errs.Add(fmt.Errorf("type %s: %w", td.Name, err))
				continue
			}
			supers = append(supers, super)
		}

		if err := hierarchy.Declare(td.Name, td.Params, supers...); err != nil {
			errs.Add(err)
		}
	}

	if err := hierarchy.Validate(); err != nil {
		errs.Add(err)
	}

	overloads := make(map[string]*resolver.OverloadSet)
	for _, dd := range doc.Declarations {
		decl, err := buildDeclaration(dd)
		if err != nil {
			errs.Add(err)
			continue
		}

		set, ok := overloads[decl.Name]
		if !ok {
			set = &resolver.OverloadSet{Name: decl.Name}
			overloads[decl.Name] = set
		}
		set.Add(decl)
	}

	units := make([]*Unit, 0, len(doc.Units))
	for _, ud := range doc.Units {
		unit, err := buildUnit(ud)
		if err != nil {
			errs.Add(err)
			continue
		}
		units = append(units, unit)
	}

	if err := errs.Defer(nil); err != nil {
		return nil, err
	}

	return &World{
		Hierarchy: hierarchy,
		Overloads: overloads,
		Units:     units,
	}, nil
}

func buildDeclaration(dd declDoc) (*resolver.Declaration, error) {
	var mode resolver.Mode
	switch dd.Mode {
	case "", "ordered":
		mode = resolver.ModeOrdered
	case "unordered":
		mode = resolver.ModeUnordered
	default:
		return nil, fmt.Errorf("declaration %s: unknown mode %q", dd.Name, dd.Mode)
	}

	params := paramSet(dd.Params)

	receivers := make([]types.Type, 0, len(dd.Receivers))
	for _, expr := range dd.Receivers {
		recv, err := ParseType(expr, params)
		if err != nil {
			return nil, fmt.Errorf("declaration %s: %w", dd.Name, err)
		}
		receivers = append(receivers, recv)
	}

	decl := &resolver.Declaration{
		Name:       dd.Name,
		Receivers:  receivers,
		Mode:       mode,
		TypeParams: dd.Params,
		Site:       dd.Site,
	}

	if err := decl.Validate(); err != nil {
		return nil, err
	}

	return decl, nil
}

func buildUnit(ud unitDoc) (*Unit, error) {
	globals := make([]resolver.ContextFrame, 0, len(ud.Globals))
	for _, fd := range ud.Globals {
		frame, err := buildFrame(fd)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", ud.Name, err)
		}
		globals = append(globals, frame)
	}

	scopes, err := buildScopes(ud.Scopes)
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", ud.Name, err)
	}

	calls, err := buildCalls(ud.Calls)
	if err != nil {
		return nil, fmt.Errorf("unit %s: %w", ud.Name, err)
	}

	return &Unit{
		Name:    ud.Name,
		Globals: globals,
		Scopes:  scopes,
		Calls:   calls,
	}, nil
}

func buildScopes(docs []scopeDoc) ([]*Scope, error) {
	scopes := make([]*Scope, 0, len(docs))
	for _, sd := range docs {
		context, err := buildFrame(sd.Context)
		if err != nil {
			return nil, err
		}

		calls, err := buildCalls(sd.Calls)
		if err != nil {
			return nil, err
		}

		nested, err := buildScopes(sd.Scopes)
		if err != nil {
			return nil, err
		}

		scopes = append(scopes, &Scope{
			Context: context,
			Calls:   calls,
			Scopes:  nested,
		})
	}

	return scopes, nil
}

func buildCalls(docs []callDoc) ([]Call, error) {
	calls := make([]Call, 0, len(docs))
	for _, cd := range docs {
		call := Call{
			CallSite: resolver.CallSite{
				Name: cd.Name,
				Site: cd.Site,
			},
		}

		if cd.Explicit != nil {
			frame, err := buildFrame(frameDoc{Type: cd.Explicit.Type, Value: cd.Explicit.Value})
			if err != nil {
				return nil, fmt.Errorf("call %s: %w", cd.Name, err)
			}
			call.Explicit = frame
			call.AmbientExplicit = cd.Explicit.Ambient
		}

		calls = append(calls, call)
	}

	return calls, nil
}

func buildFrame(fd frameDoc) (resolver.ContextFrame, error) {
	typ, err := ParseType(fd.Type, nil)
	if err != nil {
		return resolver.ContextFrame{}, err
	}

	return resolver.ContextFrame{
		Type:  typ,
		Value: fd.Value,
	}, nil
}

func paramSet(params []string) map[string]struct{} {
	if len(params) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(params))
	for _, p := range params {
		set[p] = struct{}{}
	}

	return set
}
