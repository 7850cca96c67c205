// Command redirects patches a kernel image so that calls to selected runtime
// functions jump to kernel replacements. Replacements are marked with a
// "//go:redirect-from <symbol>" comment; this is how runtime.gopanic and
// runtime.throw end up printing on the console via kfmt.Panic.
package main

import (
	"bufio"
	"debug/elf"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// redirectTableSection is the ELF section reserved by the linker script for
// the redirect table. Each entry is a (source VMA, destination VMA) pair.
const redirectTableSection = ".goredirectstbl"

var errNoModule = errors.New("go.mod does not declare a module path")

type redirect struct {
	src string
	dst string

	srcVMA uint64
	dstVMA uint64
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[redirects] error: %s\n", err.Error())
	os.Exit(1)
}

// modulePath returns the module path declared in the go.mod file at root.
func modulePath(root string) (string, error) {
	f, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 2 && fields[0] == "module" {
			return strings.Trim(fields[1], `"`), nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return "", errNoModule
}

// collectGoFiles returns the non-test Go files below dir.
func collectGoFiles(dir string) ([]string, error) {
	var goFiles []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		if filepath.Ext(p) == ".go" && !strings.HasSuffix(p, "_test.go") {
			goFiles = append(goFiles, p)
		}
		return nil
	})

	return goFiles, err
}

// findRedirects parses goFiles (paths relative to the module root) and
// returns a redirect for every function annotated with go:redirect-from.
func findRedirects(module string, goFiles []string) ([]*redirect, error) {
	var redirects []*redirect

	for _, goFile := range goFiles {
		fset := token.NewFileSet()
		f, err := parser.ParseFile(fset, goFile, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("%s: %s", goFile, err)
		}

		for _, decl := range f.Decls {
			fnDecl, ok := decl.(*ast.FuncDecl)
			if !ok || fnDecl.Doc == nil {
				continue
			}

			for _, comment := range fnDecl.Doc.List {
				if !strings.HasPrefix(comment.Text, "//go:redirect-from") {
					continue
				}

				// Symbol names use the package import path, e.g.
				// vgacons/kernel/kfmt.Panic
				pkgPath := path.Join(module, filepath.ToSlash(filepath.Dir(goFile)))
				fqName := pkgPath + "." + fnDecl.Name.Name

				fields := strings.Fields(comment.Text)
				if len(fields) != 2 {
					return nil, fmt.Errorf("malformed go:redirect-from syntax for %q", fqName)
				}

				redirects = append(redirects, &redirect{
					src: fields[1],
					dst: fqName,
				})
			}
		}
	}

	return redirects, nil
}

// resolveSymbols fills in the VMA of the source and destination symbol of
// each redirect.
func resolveSymbols(redirects []*redirect, symbols []elf.Symbol) error {
	vma := make(map[string]uint64, len(symbols))
	for _, symbol := range symbols {
		vma[symbol.Name] = symbol.Value
	}

	for _, redirect := range redirects {
		redirect.srcVMA = vma[redirect.src]
		redirect.dstVMA = vma[redirect.dst]

		switch {
		case redirect.srcVMA == 0:
			return fmt.Errorf("could not locate address of %q", redirect.src)
		case redirect.dstVMA == 0:
			return fmt.Errorf("could not locate address of %q", redirect.dst)
		}
	}

	return nil
}

// writeTable encodes the redirect table as little-endian VMA pairs.
func writeTable(w io.Writer, redirects []*redirect) error {
	for _, redirect := range redirects {
		if err := binary.Write(w, binary.LittleEndian, [2]uint64{redirect.srcVMA, redirect.dstVMA}); err != nil {
			return err
		}
	}

	return nil
}

// populateTable resolves the redirect symbols in imgFile and writes the table
// into its redirect section.
func populateTable(redirects []*redirect, imgFile string) error {
	img, err := elf.Open(imgFile)
	if err != nil {
		return err
	}

	section := img.Section(redirectTableSection)
	symbols, symErr := img.Symbols()
	img.Close()

	switch {
	case section == nil:
		return fmt.Errorf("%s: missing %s section", imgFile, redirectTableSection)
	case symErr != nil:
		return symErr
	case uint64(len(redirects))*16 > section.Size:
		return fmt.Errorf("%s: %d redirects do not fit in %s", imgFile, len(redirects), redirectTableSection)
	}

	if err = resolveSymbols(redirects, symbols); err != nil {
		return fmt.Errorf("%s: %s", imgFile, err)
	}

	f, err := os.OpenFile(imgFile, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Seek(int64(section.Offset), io.SeekStart); err != nil {
		return err
	}

	return writeTable(f, redirects)
}

func main() {
	flag.Parse()

	module, err := modulePath(".")
	if err != nil {
		exit(fmt.Errorf("this tool must be run from the module root folder: %s", err))
	}

	var imgFile string
	switch cmd := flag.Arg(0); cmd {
	case "count":
	case "populate-table":
		if flag.NArg() != 2 {
			exit(errors.New("populate-table requires the path to the kernel image as an argument"))
		}
		imgFile = flag.Arg(1)
	case "":
		exit(errors.New("missing command"))
	default:
		exit(fmt.Errorf("unknown command %q", cmd))
	}

	goFiles, err := collectGoFiles("kernel")
	if err != nil {
		exit(err)
	}

	redirects, err := findRedirects(module, goFiles)
	if err != nil {
		exit(err)
	}

	if imgFile == "" {
		fmt.Printf("%d", len(redirects))
		return
	}

	if err = populateTable(redirects, imgFile); err != nil {
		exit(err)
	}
}
