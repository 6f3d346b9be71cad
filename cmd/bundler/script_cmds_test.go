package main

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rogpeppe/go-internal/testscript"
	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/testutil/classgen"
)

// cmdMkclass writes a compiled type: mkclass <file> <binary name> [referenced class...].
func cmdMkclass(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! mkclass")
	}
	if len(args) < 2 {
		ts.Fatalf("usage: mkclass file name [ref...]")
	}

	b := classgen.New(args[1])
	for _, ref := range args[2:] {
		b.ClassRef(ref)
	}

	path := ts.MkAbs(args[0])
	ts.Check(os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	ts.Check(os.WriteFile(path, b.Bytes(), domain.FilePerm))
}

// cmdMkjar zips a directory into a jar: mkjar <jar> <dir>.
func cmdMkjar(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! mkjar")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: mkjar jar dir")
	}

	ts.Check(os.MkdirAll(filepath.Dir(ts.MkAbs(args[0])), domain.DirPerm))
	out, err := os.Create(ts.MkAbs(args[0]))
	ts.Check(err)
	zw := zip.NewWriter(out)

	root := ts.MkAbs(args[1])
	ts.Check(filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}))

	ts.Check(zw.Close())
	ts.Check(out.Close())
}
