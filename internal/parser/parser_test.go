package parser_test

import (
	"strings"
	"testing"

	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/lexer"
	"github.com/henry232323/saffron-lang/internal/parser"
	"github.com/henry232323/saffron-lang/internal/pipeline"
	"github.com/henry232323/saffron-lang/internal/prettyprinter"
)

func parseSource(t *testing.T, input string) *pipeline.PipelineContext {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}
	front := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	return front.Run(ctx)
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := parseSource(t, input)
	if len(ctx.Errors) > 0 {
		var msgs []string
		for _, err := range ctx.Errors {
			msgs = append(msgs, err.Error())
		}
		t.Fatalf("parsing failed with errors:\n%s", strings.Join(msgs, "\n"))
	}
	if ctx.AstRoot == nil {
		t.Fatalf("no AST produced for %q", input)
	}
	return ctx.AstRoot
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"var_untyped", "var x = 5;", "var x = 5\n"},
		{"var_typed", "var x: Number = 1;", "var x: Number = 1\n"},
		{"var_no_init", "var x: String;", "var x: String\n"},
		{"precedence", "var a = 5 + 2 * 10;", "var a = 5 + 2 * 10\n"},
		{"grouping", "var a = (b + c) * -d;", "var a = (b + c) * -d\n"},
		{"logical", "var ok = a and b or !c;", "var ok = a and b or !c\n"},
		{"comparison", "var ok = 1 < 2 == 3 >= 4;", "var ok = 1 < 2 == 3 >= 4\n"},
		{"assignment", "x = y = 1;", "x = y = 1\n"},
		{"atom", "var status = :ok;", "var status = :ok\n"},
		{"string", `var s = "hi";`, "var s = \"hi\"\n"},
		{"list_literal", "var xs = [1, 2, 3];", "var xs = [1, 2, 3]\n"},
		{"map_literal", `var m = {"a": 1, "b": 2};`, "var m = {\"a\": 1, \"b\": 2}\n"},
		{"index", "var x = xs[0];", "var x = xs[0]\n"},
		{"get_set", "p.x = p.y;", "p.x = p.y\n"},
		{"chained_set", "a.b.c = 1;", "a.b.c = 1\n"},
		{"call", "f(1, 2);", "f(1, 2)\n"},
		{"method_call", "list.push(1);", "list.push(1)\n"},
		{"yield_bare", "yield;", "yield\n"},
		{"yield_value", "yield [1, 0.05];", "yield [1, 0.05]\n"},
		{"union_type", "var x: Number | Nil = nil;", "var x: Number | Nil = nil\n"},
		{"generic_type", "var xs: List<Number> = [];", "var xs: List<Number> = []\n"},
		{"functor_type", "var f: (Number) => Bool;", "var f: (Number) => Bool\n"},
		{"generic_functor_type", "var f: <T>(T) => T;", "var f: <T>(T) => T\n"},
		{"type_alias", "type Pair = Map<String, Number>;", "type Pair = Map<String, Number>\n"},
		{"enum", "enum Color { Red, Green, Blue }", "enum Color { Red, Green, Blue }\n"},
		{"import", `import "lib/math" as Math;`, "import \"lib/math\" as Math\n"},
		{"while", "while (x < 10) { x = x + 1; }", "while (x < 10) {\n  x = x + 1\n}\n"},
		{"for", "for (var i = 0; i < 10; i = i + 1) { f(i); }",
			"for (var i = 0; i < 10; i = i + 1) {\n  f(i)\n}\n"},
		{"if_else", "if (ok) { f(); } else { g(); }",
			"if (ok) {\n  f()\n} else {\n  g()\n}\n"},
		{"return", "fun f(): Number { return 1; }",
			"fun f(): Number {\n  return 1\n}\n"},
		{"function", "fun add(x: Number, y: Number): Number { return x + y; }",
			"fun add(x: Number, y: Number): Number {\n  return x + y\n}\n"},
		{"generic_function", "fun id<T>(x: T): T { return x; }",
			"fun id<T>(x: T): T {\n  return x\n}\n"},
		{"bounded_generic", "fun f<T extends Printable>(x: T) { x.print(); }",
			"fun f<T extends Printable>(x: T) {\n  x.print()\n}\n"},
		{"lambda_expr_body", "var id = fun(x: Number): Number => x;",
			"var id = fun(x: Number): Number => {\n  return x\n}\n"},
		{"lambda_block_body", "var f = fun() => { return 1; };",
			"var f = fun() => {\n  return 1\n}\n"},
		{"class", "class P { var name: String; fun init(name: String) { this.name = name; } }",
			"class P {\n  var name: String\n  fun init(name: String) {\n    this.name = name\n  }\n}\n"},
		{"class_extends", "class Dog extends Animal { fun speak(): String { return super.speak(); } }",
			"class Dog extends Animal {\n  fun speak(): String {\n    return super.speak()\n  }\n}\n"},
		{"generic_class", "class Box<T> { var item: T; }",
			"class Box<T> {\n  var item: T\n}\n"},
		{"interface", "interface HasName { var name: String; fun greet(who: String): String; }",
			"interface HasName {\n  var name: String\n  fun greet(who: String): String;\n}\n"},
		{"pipe", "a |> f(b);", "f(a, b)\n"},
		{"pipe_chain", "a |> f(b) |> g();", "g(f(a, b))\n"},
		{"break", "while (true) { break; }", "while (true) {\n  break\n}\n"},
	}

	printer := prettyprinter.NewCodePrinter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program := mustParse(t, tc.input)
			got := printer.Print(program)
			if got != tc.want {
				t.Errorf("rendered output mismatch:\ngot:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

// Rendering a parsed program and parsing it again must produce the same
// tree, observed through a second render.
func TestParseRenderIdempotence(t *testing.T) {
	sources := []string{
		"var x: Number = 1;",
		"fun id<T>(x: T): T { return x; }",
		"class Dog extends Animal { var name: String; fun speak(): String { return this.name; } }",
		"interface HasName { var name: String; }",
		"var xs: List<Number> = [1, 2, 3];",
		"for (var i = 0; i < 3; i = i + 1) { yield [1, 0.05]; }",
		"a |> f(b);",
		"type Predicate<T> = <T>(T) => Bool;",
	}

	printer := prettyprinter.NewCodePrinter()
	for _, src := range sources {
		first := printer.Print(mustParse(t, src))
		second := printer.Print(mustParse(t, first))
		if first != second {
			t.Errorf("render not stable for %q:\nfirst:\n%s\nsecond:\n%s", src, first, second)
		}
	}
}

func TestPipeRewrite(t *testing.T) {
	program := mustParse(t, "a |> f(b);")

	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %T", program.Statements[0])
	}
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call expression, got %T", stmt.Expression)
	}

	callee, ok := call.Callee.(*ast.Identifier)
	if !ok || callee.Name != "f" {
		t.Fatalf("expected callee f, got %v", call.Callee)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}
	if first, ok := call.Arguments[0].(*ast.Identifier); !ok || first.Name != "a" {
		t.Errorf("expected piped value as first argument, got %v", call.Arguments[0])
	}
	if second, ok := call.Arguments[1].(*ast.Identifier); !ok || second.Name != "b" {
		t.Errorf("expected original argument second, got %v", call.Arguments[1])
	}
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantError string
	}{
		{"invalid_assignment_target", "a + b = c;", "Invalid assignment target."},
		{"pipe_non_call", "a |> b;", "Pipe target must be a call."},
		{"self_inheritance", "class A extends A {}", "A class can't inherit from itself."},
		{"self_extension", "interface I extends I {}", "An interface can't extend itself."},
		{"missing_paren", "if x { f(); }", "Expect '(' after 'if'."},
		{"expect_expression", "var x = ;", "Expect expression."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parseSource(t, tc.input)
			if ctx.AstRoot != nil {
				t.Errorf("expected nil AST on syntax error")
			}
			if len(ctx.Errors) == 0 {
				t.Fatalf("expected at least one error")
			}
			found := false
			for _, err := range ctx.Errors {
				if strings.Contains(err.Error(), tc.wantError) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error containing %q, got %v", tc.wantError, ctx.Errors)
			}
		})
	}
}

// Panic mode suppresses the cascade after the first error in a statement
// and recovers at the next declaration.
func TestPanicModeRecovery(t *testing.T) {
	ctx := parseSource(t, "var = 1;\nvar ok: Number = 2;\nfun = broken;\n")

	if ctx.AstRoot != nil {
		t.Errorf("expected nil AST on syntax error")
	}
	if len(ctx.Errors) != 2 {
		t.Fatalf("expected 2 errors (one per broken statement), got %d: %v",
			len(ctx.Errors), ctx.Errors)
	}
}
