// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package paraforge

import (
	"errors"
	"strconv"

	"github.com/gviegas/paraforge/arena"
	"github.com/gviegas/paraforge/geometry"
	"github.com/gviegas/paraforge/gltf"
	"github.com/gviegas/paraforge/internal/models"
	"github.com/gviegas/paraforge/scene"
)

var (
	// ErrNotInitialized is returned by every Context method
	// called before Init.
	ErrNotInitialized = errors.New("paraforge: not initialized")
	// ErrHandleOutOfBounds means that a string slot does not
	// exist.
	ErrHandleOutOfBounds = errors.New("paraforge: string slot out of bounds")
	// ErrSizeOutOfBounds means that a string exceeds MaxString.
	ErrSizeOutOfBounds = errors.New("paraforge: string size out of bounds")
	// ErrUnicode means that a string slot holds invalid UTF-8.
	ErrUnicode = errors.New("paraforge: invalid UTF-8")
)

// ErrorCode is the numeric form of an error, as reported
// across the host boundary.
type ErrorCode uint32

// Error codes.
const (
	None                   ErrorCode = 0
	Mutex                  ErrorCode = 1
	Generation             ErrorCode = 2
	NotImplemented         ErrorCode = 3
	ModelGeneratorNotFound ErrorCode = 8
	ParameterCount         ErrorCode = 9
	ParameterType          ErrorCode = 10
	ParameterOutOfRange    ErrorCode = 11
	OutputNotGLB           ErrorCode = 12
	UnrecognizedErrorCode  ErrorCode = 14
	HandleOutOfBounds      ErrorCode = 15
	NotInitialized         ErrorCode = 16
	SizeOutOfBounds        ErrorCode = 17
	UnicodeError           ErrorCode = 18
	VtxOutOfBounds         ErrorCode = 19
	TriOutOfBounds         ErrorCode = 20
	NonManifold            ErrorCode = 21
	Cycle                  ErrorCode = 22
	NameTooLong            ErrorCode = 23
	Color                  ErrorCode = 24
	EmptyGeometry          ErrorCode = 25
	NotRoot                ErrorCode = 26
	SharedNode             ErrorCode = 27
)

var codes = []struct {
	err  error
	code ErrorCode
}{
	{arena.ErrPoisoned, Mutex},
	{arena.ErrGeneration, Generation},
	{arena.ErrOutOfBounds, HandleOutOfBounds},
	{ErrHandleOutOfBounds, HandleOutOfBounds},
	{ErrNotInitialized, NotInitialized},
	{ErrSizeOutOfBounds, SizeOutOfBounds},
	{ErrUnicode, UnicodeError},
	{models.ErrNotFound, ModelGeneratorNotFound},
	{models.ErrParameterCount, ParameterCount},
	{models.ErrParameterType, ParameterType},
	{geometry.ErrParameterOutOfRange, ParameterOutOfRange},
	{geometry.ErrVtxOutOfBounds, VtxOutOfBounds},
	{geometry.ErrTriOutOfBounds, TriOutOfBounds},
	{geometry.ErrNonManifold, NonManifold},
	{scene.ErrCycle, Cycle},
	{scene.ErrNameTooLong, NameTooLong},
	{scene.ErrColor, Color},
	{scene.ErrEmptyGeometry, EmptyGeometry},
	{scene.ErrNotRoot, NotRoot},
	{scene.ErrSharedNode, SharedNode},
	{gltf.ErrNotGLB, OutputNotGLB},
}

// Code classifies err.
// It returns None for a nil error and
// UnrecognizedErrorCode for errors of unknown kind.
func Code(err error) ErrorCode {
	if err == nil {
		return None
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return UnrecognizedErrorCode
}

var codeNames = map[ErrorCode]string{
	None:                   "None",
	Mutex:                  "Mutex",
	Generation:             "Generation",
	NotImplemented:         "NotImplemented",
	ModelGeneratorNotFound: "ModelGeneratorNotFound",
	ParameterCount:         "ParameterCount",
	ParameterType:          "ParameterType",
	ParameterOutOfRange:    "ParameterOutOfRange",
	OutputNotGLB:           "OutputNotGLB",
	UnrecognizedErrorCode:  "UnrecognizedErrorCode",
	HandleOutOfBounds:      "HandleOutOfBounds",
	NotInitialized:         "NotInitialized",
	SizeOutOfBounds:        "SizeOutOfBounds",
	UnicodeError:           "UnicodeError",
	VtxOutOfBounds:         "VtxOutOfBounds",
	TriOutOfBounds:         "TriOutOfBounds",
	NonManifold:            "NonManifold",
	Cycle:                  "Cycle",
	NameTooLong:            "NameTooLong",
	Color:                  "Color",
	EmptyGeometry:          "EmptyGeometry",
	NotRoot:                "NotRoot",
	SharedNode:             "SharedNode",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "ErrorCode(" + strconv.FormatUint(uint64(c), 10) + ")"
}
