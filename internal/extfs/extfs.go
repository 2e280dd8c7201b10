// Copyright 2026 The ufs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package extfs is the external filesystem capability object: the only
// surface through which the ufs core ever touches BASE, the pseudo-area
// that denotes the filesystem ufs overlays. The core never imports an OS
// package directly; it calls exactly the three methods of FS.
package extfs

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// Kind mirrors store.Kind without importing the store package, so extfs has
// no dependency on the engine it serves.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

// Creation is one entry Materialize is asked to bring into existence.
type Creation struct {
	ParentPath string
	Name       string
	Kind       Kind
}

// Entry is one child reported by ListChildren. The core's directory
// iterator needs Kind, not just Name, to lazily vivify a Storage Registry
// row for a child that has never been seen through an explicit mapping.
type Entry struct {
	Name string
	Kind Kind
}

// FS is the external filesystem capability set allowed by the spec:
// existence, listing, and creation. Nothing else is exposed to the core.
type FS interface {
	// Exists reports whether path exists on the external filesystem.
	Exists(path string) (bool, error)

	// ListChildren returns the entries directly under path.
	ListChildren(path string) ([]Entry, error)

	// Materialize creates each entry in creations, skipping those that
	// already exist.
	Materialize(creations []Creation) error
}

type aferoFS struct {
	fs afero.Fs
}

// Real returns an FS backed by the OS filesystem rooted at root.
func Real(root string) FS {
	return &aferoFS{fs: afero.NewBasePathFs(afero.NewOsFs(), root)}
}

// Fake returns an in-memory FS, for tests that need to observe exactly what
// a collapse into BASE would have materialized without touching disk.
func Fake() FS {
	return &aferoFS{fs: afero.NewMemMapFs()}
}

func (a *aferoFS) Exists(path string) (bool, error) {
	return afero.Exists(a.fs, path)
}

func (a *aferoFS) ListChildren(path string) ([]Entry, error) {
	infos, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(infos))
	for _, info := range infos {
		kind := KindFile
		if info.IsDir() {
			kind = KindDirectory
		}
		out = append(out, Entry{Name: info.Name(), Kind: kind})
	}
	return out, nil
}

func (a *aferoFS) Materialize(creations []Creation) error {
	for _, c := range creations {
		full := filepath.Join(c.ParentPath, c.Name)
		exists, err := afero.Exists(a.fs, full)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		switch c.Kind {
		case KindDirectory:
			if err := a.fs.MkdirAll(full, 0755); err != nil {
				return err
			}
		case KindFile:
			if err := a.fs.MkdirAll(c.ParentPath, 0755); err != nil {
				return err
			}
			f, err := a.fs.Create(full)
			if err != nil {
				return err
			}
			_ = f.Close()
		}
	}
	return nil
}
