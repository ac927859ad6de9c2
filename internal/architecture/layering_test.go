package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "liftlog/internal/modules/"

type sourceImport struct {
	file string
	path string
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "modules")) {
		module := moduleName(imp.file)
		layer := detectLayer(imp.file)
		if module == "" || layer == "" || !strings.Contains(imp.path, modulesPrefix) {
			continue
		}
		if violatesLayerRule(module, layer, imp.path) {
			t.Fatalf("forbidden import in %s (%s): %s", imp.file, layer, imp.path)
		}
	}
}

// The TUI only talks to modules through their DTOs; handlers are injected by
// bootstrap.
func TestUIImportsOnlyDTOs(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "ui")) {
		if !strings.Contains(imp.path, modulesPrefix) {
			continue
		}
		if !isDTO(imp.path) {
			t.Fatalf("ui file %s imports %s; only module dto packages are allowed", imp.file, imp.path)
		}
	}
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	for _, imp := range collectImports(t, filepath.Join("..", "platform")) {
		if strings.Contains(imp.path, modulesPrefix) || strings.Contains(imp.path, "liftlog/internal/ui") {
			t.Fatalf("platform file %s imports %s", imp.file, imp.path)
		}
	}
}

func collectImports(t *testing.T, root string) []sourceImport {
	t.Helper()
	fset := token.NewFileSet()
	var out []sourceImport
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		slash := filepath.ToSlash(path)
		for _, imp := range node.Imports {
			out = append(out, sourceImport{file: slash, path: strings.Trim(imp.Path.Value, `"`)})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if strings.Contains(importPath, "/service") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") || strings.HasSuffix(importPath, "/domain") {
			return true
		}
		// Cross-module calls go through an outbound adapter, never the core.
		if isPortIn(importPath) {
			return layer != "adapter/out"
		}
		if isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase")
	case "domain", "dto":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") || strings.Contains(importPath, "/service") || strings.Contains(importPath, "/port/")
	default:
		return false
	}
}
