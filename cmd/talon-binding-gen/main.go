// Command talon-binding-gen scans Go source for functions annotated with a
// talon:binding comment directive and generates the matching
// binding.Definition variables next to them.
//
// Given a function like
//
//	// talon:binding
//	// Returns the shipping options for an order.
//	func shippingOptions(order Order) []Option { ... }
//
// it writes a sibling <file>.talon.go containing
//
//	// Returns the shipping options for an order.
//	var shippingOptionsBinding = binding.Must(shippingOptions, ...)
//
// so the function's hook name, parameter names and description stay in one
// place.
package main

import (
	"bytes"
	"flag"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"mvdan.cc/gofumpt/format"

	"github.com/casualjim/talon/pkg/slogx"
)

const (
	directive       = "talon:binding"
	generatedSuffix = ".talon.go"
)

var osExit = os.Exit

var log zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelDebug}),
	))
}

// bindingFuncInfo carries everything the generator needs about one
// annotated function: its name, the doc comments minus the directive line,
// and the parameter fields left after dropping context.Context parameters.
type bindingFuncInfo struct {
	name           string
	comments       []*ast.Comment
	params         []*ast.Field
	exportBindings bool
}

// collectBindings walks the file's declarations and returns info for every
// function whose doc comment carries the directive. The directive line
// itself is dropped from the collected comments, and context.Context
// parameters are dropped from the parameter list because the dispatcher
// injects the context at call time.
func collectBindings(fileAST *ast.File, exportBindings bool) []bindingFuncInfo {
	var bindings []bindingFuncInfo
	ctxImports := contextImportNames(fileAST)

	for _, decl := range fileAST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}

		var comments []*ast.Comment
		annotated := false
		for _, comment := range fn.Doc.List {
			text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
			if strings.HasPrefix(text, directive) {
				annotated = true
				continue
			}
			comments = append(comments, comment)
		}
		if !annotated {
			continue
		}

		var params []*ast.Field
		for _, field := range fn.Type.Params.List {
			if isContextParam(field, ctxImports) {
				continue
			}
			params = append(params, field)
		}

		bindings = append(bindings, bindingFuncInfo{
			name:           fn.Name.Name,
			comments:       comments,
			params:         params,
			exportBindings: exportBindings,
		})
	}

	return bindings
}

func strLit(v string) *ast.BasicLit {
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(v)}
}

func optionCall(name string, args ...ast.Expr) ast.Expr {
	return &ast.CallExpr{
		Fun:  &ast.SelectorExpr{X: ast.NewIdent("binding"), Sel: ast.NewIdent(name)},
		Args: args,
	}
}

func exported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// contextImportNames resolves which identifiers in this file refer to the
// context package. A plain import contributes "context", an aliased import
// contributes the alias, and a dot import contributes "." so that bare
// Context idents can be matched.
func contextImportNames(fileAST *ast.File) map[string]bool {
	names := make(map[string]bool)
	for _, imp := range fileAST.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != "context" {
			continue
		}
		switch {
		case imp.Name == nil:
			names["context"] = true
		case imp.Name.Name == "_":
		default:
			names[imp.Name.Name] = true
		}
	}
	return names
}

// isContextParam reports whether the field's type refers to context.Context,
// resolving the package side of the selector through the file's imports
// rather than by identifier name.
func isContextParam(field *ast.Field, ctxImports map[string]bool) bool {
	switch typ := field.Type.(type) {
	case *ast.SelectorExpr:
		pkg, ok := typ.X.(*ast.Ident)
		return ok && ctxImports[pkg.Name] && typ.Sel.Name == "Context"
	case *ast.Ident:
		return ctxImports["."] && typ.Name == "Context"
	}
	return false
}

func commentText(comments []*ast.Comment) string {
	parts := make([]string, 0, len(comments))
	for _, c := range comments {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// createBindingVariableAST builds the var declaration for one annotated
// function, preserving its doc comments on the generated variable.
func createBindingVariableAST(b bindingFuncInfo) ast.Decl {
	varName := b.name + "Binding"
	if b.exportBindings {
		varName = exported(b.name) + "Binding"
	}

	args := []ast.Expr{
		ast.NewIdent(b.name),
		optionCall("Hook", strLit(b.name)),
	}

	var paramNames []ast.Expr
	for _, field := range b.params {
		for _, ident := range field.Names {
			paramNames = append(paramNames, strLit(ident.Name))
		}
	}
	if len(paramNames) > 0 {
		args = append(args, optionCall("Parameters", paramNames...))
	}

	if desc := commentText(b.comments); desc != "" {
		args = append(args, optionCall("Description", strLit(desc)))
	}

	decl := &ast.GenDecl{
		Tok: token.VAR,
		Specs: []ast.Spec{
			&ast.ValueSpec{
				Names: []*ast.Ident{ast.NewIdent(varName)},
				Values: []ast.Expr{
					&ast.CallExpr{
						Fun:  &ast.SelectorExpr{X: ast.NewIdent("binding"), Sel: ast.NewIdent("Must")},
						Args: args,
					},
				},
			},
		},
	}
	if len(b.comments) > 0 {
		decl.Doc = &ast.CommentGroup{List: b.comments}
	}

	return decl
}

// createBindingsFile assembles the generated file's AST: the binding import
// followed by one variable per annotated function.
func createBindingsFile(pkgName string, bindings []bindingFuncInfo) *ast.File {
	decls := []ast.Decl{
		&ast.GenDecl{
			Tok: token.IMPORT,
			Specs: []ast.Spec{
				&ast.ImportSpec{Path: strLit("github.com/casualjim/talon/binding")},
			},
		},
	}
	for _, b := range bindings {
		decls = append(decls, createBindingVariableAST(b))
	}

	return &ast.File{Name: ast.NewIdent(pkgName), Decls: decls}
}

// renderFile prints the generated AST to formatted source. Doc comments are
// emitted by hand because the printer only interleaves comments that carry
// real positions.
func renderFile(file *ast.File) ([]byte, error) {
	fset := token.NewFileSet()

	var buf bytes.Buffer
	buf.WriteString("// Code generated by talon-binding-gen. DO NOT EDIT.\n\n")
	buf.WriteString("package " + file.Name.Name + "\n\n")

	for _, decl := range file.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Doc != nil {
			for _, c := range gd.Doc.List {
				buf.WriteString(c.Text + "\n")
			}
			doc := gd.Doc
			gd.Doc = nil
			if err := printer.Fprint(&buf, fset, gd); err != nil {
				gd.Doc = doc
				return nil, err
			}
			gd.Doc = doc
		} else {
			if err := printer.Fprint(&buf, fset, decl); err != nil {
				return nil, err
			}
		}
		buf.WriteString("\n\n")
	}

	return format.Source(buf.Bytes(), format.Options{})
}

func processGoFile(path string, exportBindings bool) error {
	fset := token.NewFileSet()
	fileAST, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		slog.Error("Error parsing file", slog.String("path", path), slogx.Error(err))
		return err
	}

	bindings := collectBindings(fileAST, exportBindings)
	if len(bindings) == 0 {
		return nil
	}

	src, err := renderFile(createBindingsFile(fileAST.Name.Name, bindings))
	if err != nil {
		slog.Error("Error rendering generated code", slog.String("path", path), slogx.Error(err))
		return err
	}

	outPath := strings.TrimSuffix(path, ".go") + generatedSuffix
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		slog.Error("Error writing generated file", slog.String("path", outPath), slogx.Error(err))
		return err
	}

	slog.Info("Generated file", slog.String("path", outPath))
	return nil
}

func main() {
	path := flag.String("path", ".", "file or directory to scan for annotated functions")
	export := flag.Bool("export", false, "export the generated binding variables")
	flag.Parse()

	info, err := os.Stat(*path)
	if err != nil {
		slog.Error("Error accessing path", slog.String("path", *path), slogx.Error(err))
		osExit(1)
		return
	}

	if !info.IsDir() {
		if err := processGoFile(*path, *export); err != nil {
			osExit(1)
		}
		return
	}

	err = filepath.WalkDir(*path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, generatedSuffix) {
			return nil
		}
		return processGoFile(p, *export)
	})
	if err != nil {
		slog.Error("Error walking directory", slog.String("path", *path), slogx.Error(err))
		osExit(1)
	}
}
