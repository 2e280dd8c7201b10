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

// Package ufserr implements the error taxonomy of the ufs core: a small,
// closed set of status codes, each distinct, none conflated, reported
// synchronously by every operation and never by panic or exception.
package ufserr

import "fmt"

// Code is one ufs status. The zero value, NoError, is what a successful
// call leaves the error indicator set to.
type Code uint8

const (
	NoError Code = iota
	BadCall
	AlreadyExists
	DoesNotExist
	ParentDoesNotExist
	ParentCantBeFile
	DirectoryIsNotEmpty
	ExistsInExplicitMapping
	IllegalName
	InvalidAreaInView
	ViewContainsDuplicates
	BaseIsNotLastArea
	MappingDoesNotExist
	CannotResolveStorage
	OutOfMemory
	UnknownError
)

var names = map[Code]string{
	NoError:                 "no-error",
	BadCall:                 "bad-call",
	AlreadyExists:           "already-exists",
	DoesNotExist:            "does-not-exist",
	ParentDoesNotExist:      "parent-does-not-exist",
	ParentCantBeFile:        "parent-cant-be-file",
	DirectoryIsNotEmpty:     "directory-is-not-empty",
	ExistsInExplicitMapping: "exists-in-explicit-mapping",
	IllegalName:             "illegal-name",
	InvalidAreaInView:       "invalid-area-in-view",
	ViewContainsDuplicates:  "view-contains-duplicates",
	BaseIsNotLastArea:       "base-is-not-last-area",
	MappingDoesNotExist:     "mapping-does-not-exist",
	CannotResolveStorage:    "cannot-resolve-storage",
	OutOfMemory:             "out-of-memory",
	UnknownError:            "unknown-error",
}

// String implements fmt.Stringer.
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "unknown-error"
}

// Error lets a Code serve as an errors.Is target.
func (c Code) Error() string {
	return c.String()
}

// Error is a ufs error: a Code plus an optional human-readable detail. Two
// Errors with the same Code compare equal under errors.Is.
type Error struct {
	Code   Code
	Detail string
}

func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is lets errors.Is(err, ufserr.DoesNotExist) work against a sentinel Code
// as well as against another *Error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	if c, ok := target.(Code); ok {
		return e.Code == c
	}
	return false
}

// sentinel errors, one per Code, for use with errors.Is.
var (
	ErrBadCall                 = New(BadCall, "")
	ErrAlreadyExists           = New(AlreadyExists, "")
	ErrDoesNotExist            = New(DoesNotExist, "")
	ErrParentDoesNotExist      = New(ParentDoesNotExist, "")
	ErrParentCantBeFile        = New(ParentCantBeFile, "")
	ErrDirectoryIsNotEmpty     = New(DirectoryIsNotEmpty, "")
	ErrExistsInExplicitMapping = New(ExistsInExplicitMapping, "")
	ErrIllegalName             = New(IllegalName, "")
	ErrInvalidAreaInView       = New(InvalidAreaInView, "")
	ErrViewContainsDuplicates  = New(ViewContainsDuplicates, "")
	ErrBaseIsNotLastArea       = New(BaseIsNotLastArea, "")
	ErrMappingDoesNotExist     = New(MappingDoesNotExist, "")
	ErrCannotResolveStorage    = New(CannotResolveStorage, "")
	ErrOutOfMemory             = New(OutOfMemory, "")
	ErrUnknownError            = New(UnknownError, "")
)

// CodeOf extracts the Code carried by err: NoError if err is nil,
// UnknownError if err is not a *Error.
func CodeOf(err error) Code {
	if err == nil {
		return NoError
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return UnknownError
}
