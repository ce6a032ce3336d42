package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/classgen/internal/core/effects"
	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/scaffold"
)

const baseHeader = `class Base {
public:
    virtual void draw() const;
    virtual ~Base();
private:
    virtual void hidden();
};
`

// ============================================================================
// Test Helper
// ============================================================================

func newTestGeneratorService() (*GeneratorServiceImpl, *mockWorkspace, *mockEffectExecutor) {
	ws := newMockWorkspace()
	executor := newMockEffectExecutor(ws)
	service := NewGeneratorService(ws, executor)
	return service, ws, executor
}

func widgetRequest() primary.GenerateRequest {
	return primary.GenerateRequest{
		SpecSource: primary.SpecSource{
			Raw: scaffold.RawSpec{
				Name:       "NS::Widget",
				Attributes: "public:count:int=0",
				Functions:  "public:getCount:int:[]::[const]",
			},
		},
		OutputDir: "out",
	}
}

// ============================================================================
// Generate Tests
// ============================================================================

func TestGenerate_NamespacedWidget(t *testing.T) {
	service, ws, executor := newTestGeneratorService()
	ctx := context.Background()

	resp, err := service.Generate(ctx, widgetRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Class.Name != "Widget" || resp.Class.Namespace != "NS" {
		t.Errorf("expected NS::Widget, got %s::%s", resp.Class.Namespace, resp.Class.Name)
	}
	want := []string{filepath.Join("out", "Widget.h"), filepath.Join("out", "Widget.cpp")}
	if len(resp.Written) != 2 || resp.Written[0] != want[0] || resp.Written[1] != want[1] {
		t.Errorf("expected written %v, got %v", want, resp.Written)
	}

	mkdirs := executor.fileEffects("mkdir")
	if len(mkdirs) != 1 || mkdirs[0].Path != "out" {
		t.Errorf("expected one mkdir of out, got %+v", mkdirs)
	}

	header := string(ws.files[want[0]])
	for _, line := range []string{
		"#ifndef _WIDGET_H_",
		"namespace NS {",
		"    int getCount() const;",
		"    int count = 0;",
		"} // namespace NS",
	} {
		if !strings.Contains(header, line) {
			t.Errorf("header missing %q:\n%s", line, header)
		}
	}
	source := string(ws.files[want[1]])
	if !strings.Contains(source, "int Widget::getCount() const { }") {
		t.Errorf("source missing getCount definition:\n%s", source)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", resp.Warnings)
	}
}

func TestGenerate_MissingNameWritesNothing(t *testing.T) {
	service, _, executor := newTestGeneratorService()

	req := widgetRequest()
	req.Raw.Name = ""
	_, err := service.Generate(context.Background(), req)

	if err == nil {
		t.Fatal("expected error for missing class name")
	}
	if !errors.Is(err, errors.ErrStructural) {
		t.Errorf("expected structural error, got %v", err)
	}
	if len(executor.executedEffects) != 0 {
		t.Errorf("expected no effects, got %d", len(executor.executedEffects))
	}
}

func TestGenerate_NothingEnabled(t *testing.T) {
	service, _, executor := newTestGeneratorService()

	req := widgetRequest()
	req.Raw.NoHeader = true
	req.Raw.NoSource = true
	_, err := service.Generate(context.Background(), req)

	if err == nil {
		t.Fatal("expected error when both outputs are disabled")
	}
	if !strings.Contains(err.Error(), "nothing to generate") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(executor.executedEffects) != 0 {
		t.Error("expected no effects")
	}
}

func TestGenerate_WithBaseClass(t *testing.T) {
	service, ws, _ := newTestGeneratorService()
	ws.files[filepath.Join("/src", "Base.h")] = []byte(baseHeader)

	req := widgetRequest()
	req.Raw.BaseClasses = []string{"Base.h"}
	req.BaseDir = "/src"
	resp, err := service.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(resp.Class.BaseClasses) != 1 {
		t.Fatalf("expected 1 base class, got %d", len(resp.Class.BaseClasses))
	}
	base := resp.Class.BaseClasses[0]
	if base.ClassName != "Base" {
		t.Errorf("expected base class name Base, got %q", base.ClassName)
	}
	if len(base.AccessibleVirtuals) != 1 || base.AccessibleVirtuals[0] != "virtual void draw() const" {
		t.Errorf("unexpected accessible virtuals %v", base.AccessibleVirtuals)
	}

	header := string(ws.files[filepath.Join("out", "Widget.h")])
	for _, line := range []string{
		`#include "Base.h"`,
		"class Widget : public Base {",
		"    ~Widget() override = default;",
		"    virtual void draw() const;",
	} {
		if !strings.Contains(header, line) {
			t.Errorf("header missing %q:\n%s", line, header)
		}
	}
	if strings.Contains(header, "hidden") {
		t.Errorf("private virtual leaked into header:\n%s", header)
	}
	source := string(ws.files[filepath.Join("out", "Widget.cpp")])
	if !strings.Contains(source, "void Widget::draw() const { }") {
		t.Errorf("source missing draw override:\n%s", source)
	}
}

func TestGenerate_MissingBaseClassIsFatal(t *testing.T) {
	service, _, executor := newTestGeneratorService()

	req := widgetRequest()
	req.Raw.BaseClasses = []string{"Missing.h"}
	_, err := service.Generate(context.Background(), req)

	if err == nil {
		t.Fatal("expected error for missing base class file")
	}
	if !errors.Is(err, errors.ErrBaseClass) {
		t.Errorf("expected base class error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Missing.h") {
		t.Errorf("expected path in error, got %v", err)
	}
	if len(executor.executedEffects) != 0 {
		t.Error("expected no effects")
	}
}

func TestGenerate_BaseClassWithoutClass(t *testing.T) {
	service, ws, _ := newTestGeneratorService()
	ws.files["Empty.h"] = []byte("int x;\n")

	req := widgetRequest()
	req.Raw.BaseClasses = []string{"Empty.h"}
	_, err := service.Generate(context.Background(), req)

	if !errors.Is(err, errors.ErrBaseClass) {
		t.Errorf("expected base class error, got %v", err)
	}
}

func TestGenerate_DryRun(t *testing.T) {
	service, ws, executor := newTestGeneratorService()

	req := widgetRequest()
	req.DryRun = true
	resp, err := service.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(resp.Files) != 2 {
		t.Errorf("expected 2 composed files, got %d", len(resp.Files))
	}
	if len(resp.Written) != 0 {
		t.Errorf("expected nothing written, got %v", resp.Written)
	}
	if len(executor.executedEffects) != 0 || len(ws.files) != 0 {
		t.Error("dry run must not execute effects")
	}
}

func TestGenerate_ValidationEffects(t *testing.T) {
	service, _, executor := newTestGeneratorService()

	req := widgetRequest()
	req.FormatStyle = "Google"
	req.CompileCheck = true
	req.SyntaxCheck = true
	req.BaseDir = "/src"
	if _, err := service.Generate(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	validations := executor.validationEffects()
	if len(validations) != 3 {
		t.Fatalf("expected 3 validation effects, got %d", len(validations))
	}
	tools := []string{validations[0].Tool, validations[1].Tool, validations[2].Tool}
	want := []string{effects.ToolFormat, effects.ToolCompile, effects.ToolSyntax}
	for i := range want {
		if tools[i] != want[i] {
			t.Errorf("expected tools %v, got %v", want, tools)
			break
		}
	}
	if validations[0].Style != "Google" {
		t.Errorf("expected Google style, got %q", validations[0].Style)
	}
	compile := validations[1]
	if len(compile.Paths) != 1 || compile.Paths[0] != filepath.Join("out", "Widget.cpp") {
		t.Errorf("expected compile of Widget.cpp only, got %v", compile.Paths)
	}
	if len(compile.IncludeDirs) != 2 || compile.IncludeDirs[1] != "/src" {
		t.Errorf("expected include dirs [out /src], got %v", compile.IncludeDirs)
	}
}

func TestGenerate_CompileSkippedWithoutSource(t *testing.T) {
	service, _, executor := newTestGeneratorService()

	req := widgetRequest()
	req.Raw.NoSource = true
	req.CompileCheck = true
	resp, err := service.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(executor.validationEffects()) != 0 {
		t.Error("expected no compile effect without a definition file")
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "no definition file") {
		t.Errorf("expected compile skip warning, got %v", resp.Warnings)
	}
	if len(resp.Written) != 1 {
		t.Errorf("expected only the header written, got %v", resp.Written)
	}
}

func TestGenerate_ExecutorError(t *testing.T) {
	service, _, executor := newTestGeneratorService()
	executor.executeErr = errMock

	_, err := service.Generate(context.Background(), widgetRequest())
	if err == nil {
		t.Fatal("expected error from executor")
	}
	if !strings.Contains(err.Error(), "failed to write generated files") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerate_MalformedSectionDegrades(t *testing.T) {
	service, _, _ := newTestGeneratorService()

	req := widgetRequest()
	req.Raw.Functions = "public:broken"
	resp, err := service.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Class.Functions) != 0 {
		t.Errorf("expected functions dropped, got %v", resp.Class.Functions)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "functions section ignored") {
		t.Errorf("expected functions warning, got %v", resp.Warnings)
	}

	req.Strict = true
	if _, err := service.Generate(context.Background(), req); err == nil {
		t.Error("expected strict mode to fail on a malformed section")
	}
}

// ============================================================================
// Spec File Tests
// ============================================================================

func TestGenerate_SpecFileMerge(t *testing.T) {
	service, ws, _ := newTestGeneratorService()
	ws.files["widget.cfg"] = []byte(`# extra members
--baseclass
--attributes [ private:name:std::string ]
--functions [ public:reset:void:[]:: ]
`)

	req := widgetRequest()
	req.SpecFile = "widget.cfg"
	resp, err := service.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	attrs := resp.Class.Attributes
	if len(attrs) != 2 || attrs[0].Name != "count" || attrs[1].Name != "name" {
		t.Errorf("expected command-line attributes before file attributes, got %+v", attrs)
	}
	funcs := resp.Class.Functions
	if len(funcs) != 2 || funcs[0].Name != "getCount" || funcs[1].Name != "reset" {
		t.Errorf("expected getCount then reset, got %+v", funcs)
	}
}

func TestGenerate_SpecFileStructuralErrorDegrades(t *testing.T) {
	service, ws, _ := newTestGeneratorService()
	ws.files["broken.cfg"] = []byte("--attributes [ private:name:std::string ]\n")

	req := widgetRequest()
	req.SpecFile = "broken.cfg"
	resp, err := service.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Class.Attributes) != 1 {
		t.Errorf("expected only command-line attributes, got %+v", resp.Class.Attributes)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "spec file ignored") {
		t.Errorf("expected spec file warning, got %v", resp.Warnings)
	}
}

func TestGenerate_SpecFileStructuralErrorStrict(t *testing.T) {
	service, ws, executor := newTestGeneratorService()
	ws.files["broken.cfg"] = []byte("--attributes []\n")

	req := widgetRequest()
	req.SpecFile = "broken.cfg"
	req.Strict = true
	_, err := service.Generate(context.Background(), req)

	if !errors.Is(err, errors.ErrStructural) {
		t.Errorf("expected structural error, got %v", err)
	}
	if len(executor.executedEffects) != 0 {
		t.Error("expected no effects")
	}
}

func TestGenerate_SpecFileMissingIsIgnored(t *testing.T) {
	service, ws, _ := newTestGeneratorService()

	req := widgetRequest()
	req.SpecFile = "nope.cfg"
	resp, err := service.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("expected unreadable spec file to be ignored, got %v", err)
	}

	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "nope.cfg") {
		t.Errorf("expected one warning naming the spec file, got %v", resp.Warnings)
	}
	if _, ok := ws.files[filepath.Join("out", "Widget.h")]; !ok {
		t.Error("expected Widget.h to be written")
	}
	if _, ok := ws.files[filepath.Join("out", "Widget.cpp")]; !ok {
		t.Error("expected Widget.cpp to be written")
	}
}

func TestGenerate_SpecFileMissingStrict(t *testing.T) {
	service, _, executor := newTestGeneratorService()

	req := widgetRequest()
	req.SpecFile = "nope.cfg"
	req.Strict = true
	_, err := service.Generate(context.Background(), req)

	if !errors.Is(err, errors.ErrStructural) {
		t.Errorf("expected structural error, got %v", err)
	}
	if len(executor.executedEffects) != 0 {
		t.Error("expected no effects")
	}
}

// ============================================================================
// Inspect Tests
// ============================================================================

func TestInspect_ResolvesWithoutEffects(t *testing.T) {
	service, ws, executor := newTestGeneratorService()
	ws.files["Base.h"] = []byte(baseHeader)

	resp, err := service.Inspect(context.Background(), primary.InspectRequest{
		SpecSource: primary.SpecSource{
			Raw: scaffold.RawSpec{Name: "Widget", BaseClasses: []string{"Base.h"}, Template: "T"},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Class.Name != "Widget" {
		t.Errorf("expected Widget, got %q", resp.Class.Name)
	}
	if len(resp.Class.TemplateParams) != 1 || resp.Class.TemplateParams[0] != "T" {
		t.Errorf("unexpected template params %v", resp.Class.TemplateParams)
	}
	if len(resp.Class.BaseClasses) != 1 || resp.Class.BaseClasses[0].ClassName != "Base" {
		t.Errorf("expected analyzed base class, got %+v", resp.Class.BaseClasses)
	}
	if len(executor.executedEffects) != 0 {
		t.Error("inspect must not execute effects")
	}
}

// ============================================================================
// Analyze Tests
// ============================================================================

func TestAnalyze_ReportsEachFile(t *testing.T) {
	service, ws, _ := newTestGeneratorService()
	ws.files[filepath.Join("lib", "Base.h")] = []byte(baseHeader)
	ws.files[filepath.Join("lib", "Shape.h")] = []byte(`class Shape {
protected:
    virtual double area() const = 0;
};
`)

	resp, err := service.Analyze(context.Background(), primary.AnalyzeRequest{
		Paths:   []string{"Base.h", "Shape.h"},
		BaseDir: "lib",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(resp.BaseClasses) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.BaseClasses))
	}
	if resp.BaseClasses[0].FilePath != "Base.h" || resp.BaseClasses[1].ClassName != "Shape" {
		t.Errorf("unexpected results %+v", resp.BaseClasses)
	}
	shape := resp.BaseClasses[1].AccessibleVirtuals
	if len(shape) != 1 || shape[0] != "virtual double area() const = 0" {
		t.Errorf("unexpected Shape virtuals %v", shape)
	}
}

func TestAnalyze_NoPaths(t *testing.T) {
	service, _, _ := newTestGeneratorService()

	_, err := service.Analyze(context.Background(), primary.AnalyzeRequest{})
	if err == nil {
		t.Fatal("expected error without paths")
	}
	if len(errors.GetAllHints(err)) == 0 {
		t.Error("expected a hint on the error")
	}
}

// ============================================================================
// Init Tests
// ============================================================================

func TestInit_WritesStarterFiles(t *testing.T) {
	service, ws, _ := newTestGeneratorService()

	resp, err := service.Init(context.Background(), primary.InitRequest{Dir: "proj"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(resp.Written) != 2 || len(resp.Skipped) != 0 {
		t.Errorf("expected 2 written, 0 skipped; got %v / %v", resp.Written, resp.Skipped)
	}
	cfg := string(ws.files[filepath.Join("proj", "example.cfg")])
	if !strings.Contains(cfg, "--baseclass") || !strings.Contains(cfg, "--functions") {
		t.Errorf("example spec missing markers:\n%s", cfg)
	}
	if _, err := scaffold.ParseSpecFile(cfg); err != nil {
		t.Errorf("example spec does not parse: %v", err)
	}
}

func TestInit_SkipsExistingUnlessForced(t *testing.T) {
	service, ws, _ := newTestGeneratorService()
	existing := filepath.Join("proj", "classgen.yaml")
	ws.files[existing] = []byte("output_dir: keep\n")

	resp, err := service.Init(context.Background(), primary.InitRequest{Dir: "proj"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0] != existing {
		t.Errorf("expected %s skipped, got %v", existing, resp.Skipped)
	}
	if string(ws.files[existing]) != "output_dir: keep\n" {
		t.Error("existing settings file was overwritten")
	}

	resp, err = service.Init(context.Background(), primary.InitRequest{Dir: "proj", Force: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Written) != 2 {
		t.Errorf("expected both files written with force, got %v", resp.Written)
	}
}
