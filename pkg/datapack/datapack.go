// Package datapack writes a compiled function tree to disk as a
// Minecraft datapack: a pack.mcmeta manifest plus one .mcfunction file
// per compiled function, nested under its scope path.
package datapack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Function is the minimal view of a compiled function the emitter needs:
// its location in the function tree, its body text, and its children.
// pkg/mcfunction.MCFunction implements this.
type Function interface {
	FunctionName() string
	FunctionScope() []string
	BodyText() string
	ChildFunctions() []Function
}

// Manifest is the JSON document written to pack.mcmeta. Field order
// matters for pack_format (emitted as a string, not a number) and is
// preserved by struct field order.
type Manifest struct {
	Pack PackSection `json:"pack"`
}

// PackSection is the "pack" object inside pack.mcmeta.
type PackSection struct {
	PackFormat  string `json:"pack_format"`
	Description string `json:"description"`
}

const packFormat = "61"

// Write recreates pack_root = exportDir/projectName from scratch and
// writes the manifest plus the root function and all of its transitive
// children. To honor "rewrite the whole tree or leave a partial tree"
// without ever deleting a directory a failed write might still be using,
// the new tree is staged under a uuid-suffixed temporary directory next
// to pack_root and only swapped into place once every file has been
// written successfully.
func Write(exportDir, projectName, description string, root Function) error {
	packRoot := filepath.Join(exportDir, projectName)
	staging := packRoot + "." + uuid.NewString() + ".staging"

	if err := os.MkdirAll(staging, 0o750); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := writeManifest(staging, description); err != nil {
		return err
	}

	functionRoot := filepath.Join(staging, "data", projectName, "function")
	if err := os.MkdirAll(functionRoot, 0o750); err != nil {
		return fmt.Errorf("create function directory: %w", err)
	}
	if err := writeFunction(functionRoot, root); err != nil {
		return fmt.Errorf("write function tree: %w", err)
	}

	if _, err := os.Stat(packRoot); err == nil {
		if err := os.RemoveAll(packRoot); err != nil {
			return fmt.Errorf("remove existing pack directory: %w", err)
		}
	}
	if err := os.Rename(staging, packRoot); err != nil {
		return fmt.Errorf("move staged pack into place: %w", err)
	}
	return nil
}

func writeManifest(packRoot, description string) error {
	manifest := Manifest{Pack: PackSection{PackFormat: packFormat, Description: description}}
	body, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pack.mcmeta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(packRoot, "pack.mcmeta"), body, 0o640); err != nil {
		return fmt.Errorf("write pack.mcmeta: %w", err)
	}
	return nil
}

// writeFunction recursively saves fn and every descendant under
// functionRoot, one .mcfunction file per compiled function.
func writeFunction(functionRoot string, fn Function) error {
	dir := functionRoot
	if scope := fn.FunctionScope(); len(scope) > 0 {
		dir = filepath.Join(append([]string{functionRoot}, scope...)...)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, fn.FunctionName()+".mcfunction")
	body := fn.BodyText()
	if body != "" {
		body += "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0o640); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	for _, child := range fn.ChildFunctions() {
		if err := writeFunction(functionRoot, child); err != nil {
			return err
		}
	}
	return nil
}
