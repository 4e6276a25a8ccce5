package internal_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestTUIImportRestrictions ensures the UI talks to the game only through api
// and the command interpreter
func TestTUIImportRestrictions(t *testing.T) {
	allowedPrefixes := []string{
		"melite/internal/api",
		"melite/internal/commands",
		"melite/internal/log",
		"melite/internal/theme",
	}
	forbiddenPrefixes := []string{
		"melite/internal/game",
		"melite/internal/database",
		"melite/internal/telnet",
	}

	checkImports(t, "./tui", allowedPrefixes, forbiddenPrefixes)
}

// TestCoreImportRestrictions keeps the simulation free of every front end
func TestCoreImportRestrictions(t *testing.T) {
	frontEnds := []string{
		"melite/internal/api",
		"melite/internal/commands",
		"melite/internal/tui",
		"melite/internal/telnet",
		"melite/internal/database",
		"melite/internal/chart",
		"melite/internal/config",
	}

	for _, dir := range []string{"./galaxy", "./market", "./game", "./route"} {
		checkImports(t, dir, nil, frontEnds)
	}
}

// TestTelnetImportRestrictions ensures sessions reach the game through api
func TestTelnetImportRestrictions(t *testing.T) {
	checkImports(t, "./telnet", nil, []string{
		"melite/internal/tui",
		"melite/internal/database",
		"melite/internal/market",
		"melite/internal/galaxy",
	})
}

func checkImports(t *testing.T, packageDir string, allowedPrefixes, forbiddenPrefixes []string) {
	err := filepath.Walk(packageDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			return nil
		}

		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			// Skip standard library and third-party imports
			if !strings.HasPrefix(importPath, "melite/internal") {
				continue
			}

			for _, forbidden := range forbiddenPrefixes {
				if strings.HasPrefix(importPath, forbidden) {
					t.Errorf("FORBIDDEN import in %s: %s", path, importPath)
				}
			}

			if len(allowedPrefixes) > 0 {
				allowed := false
				for _, prefix := range allowedPrefixes {
					if strings.HasPrefix(importPath, prefix) {
						allowed = true
						break
					}
				}
				if !allowed {
					t.Errorf("DISALLOWED import in %s: %s (not in allowed list)", path, importPath)
				}
			}
		}

		return nil
	})

	if err != nil {
		t.Errorf("Failed to walk directory %s: %v", packageDir, err)
	}
}
