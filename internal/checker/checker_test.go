package checker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/lexer"
	"github.com/henry232323/saffron-lang/internal/modules"
	"github.com/henry232323/saffron-lang/internal/parser"
	"github.com/henry232323/saffron-lang/internal/pipeline"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

func checkSource(t *testing.T, source string) *pipeline.PipelineContext {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: source}
	pipe := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&CheckerProcessor{Registry: modules.NewRegistry()},
	)
	ctx = pipe.Run(ctx)
	require.NotNil(t, ctx.AstRoot, "source must parse: %v", ctx.Errors)
	return ctx
}

func errorMessages(ctx *pipeline.PipelineContext) []string {
	msgs := make([]string, 0, len(ctx.Errors))
	for _, err := range ctx.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

func assertClean(t *testing.T, ctx *pipeline.PipelineContext) {
	t.Helper()
	assert.Empty(t, errorMessages(ctx))
}

func assertHasError(t *testing.T, ctx *pipeline.PipelineContext, fragment string) {
	t.Helper()
	for _, msg := range errorMessages(ctx) {
		if strings.Contains(msg, fragment) {
			return
		}
	}
	t.Errorf("expected a diagnostic containing %q, got %v", fragment, errorMessages(ctx))
}

// varInitType returns the checked type of the initializer of the i-th
// top-level statement, which must be a var declaration.
func varInitType(t *testing.T, ctx *pipeline.PipelineContext, i int) typesystem.Type {
	t.Helper()
	vs, ok := ctx.AstRoot.Statements[i].(*ast.VarStatement)
	require.True(t, ok, "statement %d is %T, want var", i, ctx.AstRoot.Statements[i])
	require.NotNil(t, vs.Value)
	return ctx.Types[vs.Value]
}

func TestBasicTyping(t *testing.T) {
	assertClean(t, checkSource(t, "var x: Number = 1;"))

	ctx := checkSource(t, `var y: Number = "s";`)
	assertHasError(t, ctx, "Type mismatch")
	assertHasError(t, ctx, "'y'")
}

func TestPrimitiveLiterals(t *testing.T) {
	ctx := checkSource(t, `
var a = 1;
var b = "s";
var c = true;
var d = nil;
var e = :ok;
`)
	assertClean(t, ctx)
	assert.Same(t, typesystem.Number, varInitType(t, ctx, 0))
	assert.Same(t, typesystem.String, varInitType(t, ctx, 1))
	assert.Same(t, typesystem.Bool, varInitType(t, ctx, 2))
	assert.Same(t, typesystem.Nil, varInitType(t, ctx, 3))
	assert.Same(t, typesystem.Atom, varInitType(t, ctx, 4))
}

func TestStructuralInterfaceAssignment(t *testing.T) {
	ctx := checkSource(t, `
interface HasName { var name: String; }
class P { var name: String; }
var p: HasName = P();
`)
	assertClean(t, ctx)

	ctx = checkSource(t, `
interface HasName { var name: String; }
class Q { var age: Number; }
var p: HasName = Q();
`)
	assertHasError(t, ctx, "Type mismatch")
}

func TestGenericInference(t *testing.T) {
	ctx := checkSource(t, `
fun id<T>(x: T): T { return x; }
var n: Number = id(7);
`)
	assertClean(t, ctx)

	ctx = checkSource(t, `
fun id<T>(x: T): T { return x; }
var s: String = id(7);
`)
	assertHasError(t, ctx, "Type mismatch")
}

func TestGenericBoundEnforced(t *testing.T) {
	ctx := checkSource(t, `
class Animal {}
class Dog extends Animal {}
fun pet<T extends Animal>(x: T): T { return x; }
var d: Dog = pet(Dog());
`)
	assertClean(t, ctx)

	ctx = checkSource(t, `
class Animal {}
fun pet<T extends Animal>(x: T): T { return x; }
pet(1);
`)
	assertHasError(t, ctx, "Type mismatch in argument 1")
}

func TestListLiteralInference(t *testing.T) {
	ctx := checkSource(t, "var xs = [1, 2, 3];")
	assertClean(t, ctx)
	assert.Equal(t, "List<Number>", varInitType(t, ctx, 0).String())

	ctx = checkSource(t, "var ys: List<String> = [1];")
	assertHasError(t, ctx, "Type mismatch")

	// Empty literal under an annotation takes the annotated shape.
	ctx = checkSource(t, "var zs: List<String> = [];")
	assertClean(t, ctx)
	assert.Equal(t, "List<String>", varInitType(t, ctx, 0).String())
}

func TestMapLiteralChecking(t *testing.T) {
	ctx := checkSource(t, `var m: Map<String, Number> = {"a": 1};`)
	assertClean(t, ctx)

	ctx = checkSource(t, `var m: Map<String, Number> = {1: 1};`)
	assertHasError(t, ctx, "map key must be String")

	ctx = checkSource(t, `var m = {"a": 1};`)
	assertClean(t, ctx)
	assert.Equal(t, "Map<String, Number>", varInitType(t, ctx, 0).String())
}

func TestPipeTyping(t *testing.T) {
	ctx := checkSource(t, `
fun add(a: Number, b: Number): Number { return a + b; }
var r: Number = 1 |> add(2);
`)
	assertClean(t, ctx)
}

func TestCallDiagnostics(t *testing.T) {
	ctx := checkSource(t, `
fun f(x: Number): Number { return x; }
f(1, 2);
`)
	assertHasError(t, ctx, "Expected 1 arguments but got 2")

	ctx = checkSource(t, `var x = 1; x();`)
	assertHasError(t, ctx, "Can only call functions and classes")
}

func TestUndefinedNames(t *testing.T) {
	assertHasError(t, checkSource(t, "missing;"), "Undefined variable 'missing'")
	assertHasError(t, checkSource(t, "var x: Missing = 1;"), "Undefined type 'Missing'")
}

func TestFieldAccess(t *testing.T) {
	ctx := checkSource(t, `
class P { var name: String; fun init(name: String) { this.name = name; } }
var p = P("x");
var n: String = p.name;
`)
	assertClean(t, ctx)

	ctx = checkSource(t, `
class P { var name: String; }
var p = P();
p.missing;
`)
	assertHasError(t, ctx, "Invalid field 'missing'")

	ctx = checkSource(t, `
class P { var name: String; }
var p = P();
p.name = 1;
`)
	assertHasError(t, ctx, "Type mismatch")
}

func TestInheritanceAndSuper(t *testing.T) {
	ctx := checkSource(t, `
class Animal {
  fun speak(): String { return "..."; }
}
class Dog extends Animal {
  fun speak(): String { return super.speak() + "!"; }
}
var d: Animal = Dog();
var s: String = Dog().speak();
`)
	assertClean(t, ctx)

	ctx = checkSource(t, `
class Loner {
  fun speak(): String { return super.speak(); }
}
`)
	assertHasError(t, ctx, "no superclass")
}

func TestGenericClassFieldSubstitution(t *testing.T) {
	ctx := checkSource(t, `
class Box<T> { var item: T; }
var b: Box<Number>;
var n: Number = b.item;
`)
	assertClean(t, ctx)

	ctx = checkSource(t, `
class Box<T> { var item: T; }
var b: Box<Number>;
var s: String = b.item;
`)
	assertHasError(t, ctx, "Type mismatch")
}

func TestGenericArity(t *testing.T) {
	assertHasError(t, checkSource(t, "var xs: List<Number, String> = [];"),
		"Expected 1 generic arguments")
	assertHasError(t, checkSource(t, `
class Box<T> { var item: T; }
var b: Box<Number, String>;
`), "Expected 1 generic arguments")
	assertHasError(t, checkSource(t, "var n: Number<String> = 1;"),
		"does not take generic arguments")
}

func TestIndexing(t *testing.T) {
	ctx := checkSource(t, `
var xs: List<Number> = [1, 2];
var n: Number = xs[0];
var m: Map<String, Bool> = {"on": true};
var b: Bool = m["on"];
`)
	assertClean(t, ctx)

	assertHasError(t, checkSource(t, `
var xs: List<Number> = [];
xs["a"];
`), "List index must be a number")

	assertHasError(t, checkSource(t, "var n = 1; n[0];"), "Only lists and maps can be indexed")
}

func TestUnionTypes(t *testing.T) {
	ctx := checkSource(t, `
var x: Number | Nil = nil;
x = 1;
`)
	assertClean(t, ctx)

	assertHasError(t, checkSource(t, `var x: Number | Nil = "s";`), "Type mismatch")
}

func TestTypeAlias(t *testing.T) {
	ctx := checkSource(t, `
type Id = Number;
var x: Id = 1;
`)
	assertClean(t, ctx)
}

func TestEnumTyping(t *testing.T) {
	ctx := checkSource(t, `
enum Color { Red, Green, Blue }
var c: Color = Color.Red;
`)
	assertClean(t, ctx)

	assertHasError(t, checkSource(t, `
enum Color { Red, Green }
Color.Purple;
`), "Invalid field 'Purple'")
}

func TestYieldTypesAny(t *testing.T) {
	ctx := checkSource(t, `
fun worker() {
  yield [1, 0.05];
  yield;
}
`)
	assertClean(t, ctx)
}

func TestTaskBuiltinModuleFallback(t *testing.T) {
	ctx := checkSource(t, `
var t: Task = Task.spawn(fun() => 1);
var ok: Bool = Task.sleep(0.05);
var op: Number = Task.SLEEP;
`)
	assertClean(t, ctx)
}

func TestReturnChecking(t *testing.T) {
	assertHasError(t, checkSource(t, `fun f(): Number { return "s"; }`), "Type mismatch")
	assertHasError(t, checkSource(t, "return 1;"), "Can't return from top-level code")

	// Inferred return: first return fixes the type.
	ctx := checkSource(t, `
fun f(flag: Bool) {
  if (flag) { return 1; }
  return 2;
}
var g: (Bool) => Number = f;
`)
	assertClean(t, ctx)
}

func TestTypeDeterminism(t *testing.T) {
	source := `
fun id<T>(x: T): T { return x; }
var n: Number = id(7);
var bad: String = 1;
`
	first := checkSource(t, source)
	second := checkSource(t, source)

	assert.Equal(t, errorMessages(first), errorMessages(second))

	// Primitive types cache identically, by identity, across runs.
	assert.Same(t, varInitType(t, first, 1), varInitType(t, second, 1))
}

func TestImportCaching(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "mathlib.saf")
	require.NoError(t, os.WriteFile(libPath, []byte("var pi: Number = 3.14;\n"), 0o644))

	mainPath := filepath.Join(dir, "main.saf")
	source := `
import "mathlib" as MathA;
import "mathlib" as MathB;
var x: Number = MathA.pi;
var y: Number = MathB.pi;
`
	ctx := &pipeline.PipelineContext{FilePath: mainPath, SourceCode: source}
	registry := modules.NewRegistry()
	pipe := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&CheckerProcessor{Registry: registry},
	)
	ctx = pipe.Run(ctx)
	require.NotNil(t, ctx.AstRoot)
	assertClean(t, ctx)

	abs, err := filepath.Abs(libPath)
	require.NoError(t, err)
	modFirst, ok := registry.LookupPath(abs)
	require.True(t, ok, "module should be cached under its absolute path")
	modSecond, _ := registry.LookupPath(abs)
	assert.Same(t, modFirst, modSecond)

	// Both aliases resolve to the very same module type.
	aliasA := ctx.AstRoot.Statements[0].(*ast.ImportStatement)
	aliasB := ctx.AstRoot.Statements[1].(*ast.ImportStatement)
	require.NotNil(t, aliasA.Alias)
	require.NotNil(t, aliasB.Alias)
	getA := ctx.AstRoot.Statements[2].(*ast.VarStatement).Value.(*ast.GetExpression)
	getB := ctx.AstRoot.Statements[3].(*ast.VarStatement).Value.(*ast.GetExpression)
	assert.Same(t, ctx.Types[getA.Object], ctx.Types[getB.Object])
}

func TestImportMissingFile(t *testing.T) {
	ctx := checkSource(t, `import "nowhere/missing" as M;`)
	assertHasError(t, ctx, "Cannot read module")
}

func TestLambdaTyping(t *testing.T) {
	ctx := checkSource(t, `
var double: (Number) => Number = fun(x: Number): Number => x * 2;
var n: Number = double(21);
`)
	assertClean(t, ctx)

	assertHasError(t, checkSource(t, `
var wrong: (Number) => String = fun(x: Number): Number => x;
`), "Type mismatch")
}
