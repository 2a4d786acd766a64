package binder

import (
	"errors"
	"reflect"
	"strings"

	"ctor-binder/internal/common"
)

// Kind classifies binder failures.
type Kind int

const (
	_ Kind = iota

	ConstructorNotFound
	NoConstructorSelected
	BindingPlanMismatch
	NoAnnotatedConstructor
	AmbiguousAnnotation
	NameInferenceUnsupported
	ConversionFailed
	MarshallingUnsupported
)

var (
	ErrConstructorNotFound      = errors.New("binder: constructor not found")
	ErrNoConstructorSelected    = errors.New("binder: no constructor selected")
	ErrBindingPlanMismatch      = errors.New("binder: binding plan mismatch")
	ErrNoAnnotatedConstructor   = errors.New("binder: no annotated constructor")
	ErrAmbiguousAnnotation      = errors.New("binder: ambiguous annotation")
	ErrNameInferenceUnsupported = errors.New("binder: name inference unsupported")
	ErrConversionFailed         = errors.New("binder: conversion failed")
	ErrMarshallingUnsupported   = errors.New("binder: marshalling unsupported")
)

func (k Kind) String() string {
	switch k {
	case ConstructorNotFound:
		return "constructor not found"
	case NoConstructorSelected:
		return "no constructor selected"
	case BindingPlanMismatch:
		return "binding plan mismatch"
	case NoAnnotatedConstructor:
		return "no annotated constructor"
	case AmbiguousAnnotation:
		return "ambiguous annotation"
	case NameInferenceUnsupported:
		return "name inference unsupported"
	case ConversionFailed:
		return "conversion failed"
	case MarshallingUnsupported:
		return "marshalling unsupported"
	default:
		return common.UnknownStr
	}
}

// Configuration reports whether the kind is raised while a resolver is being
// set up, as opposed to while an adapter is in use.
func (k Kind) Configuration() bool {
	switch k {
	case ConstructorNotFound, NoConstructorSelected, BindingPlanMismatch,
		NoAnnotatedConstructor, AmbiguousAnnotation, NameInferenceUnsupported:
		return true
	default:
		return false
	}
}

func (k Kind) sentinel() error {
	switch k {
	case ConstructorNotFound:
		return ErrConstructorNotFound
	case NoConstructorSelected:
		return ErrNoConstructorSelected
	case BindingPlanMismatch:
		return ErrBindingPlanMismatch
	case NoAnnotatedConstructor:
		return ErrNoAnnotatedConstructor
	case AmbiguousAnnotation:
		return ErrAmbiguousAnnotation
	case NameInferenceUnsupported:
		return ErrNameInferenceUnsupported
	case ConversionFailed:
		return ErrConversionFailed
	case MarshallingUnsupported:
		return ErrMarshallingUnsupported
	default:
		return nil
	}
}

// Error is the single error type returned by resolvers and adapters. Match
// it with errors.Is against the Err* sentinels, or with errors.As to read
// the Kind and the target type.
type Error struct {
	Kind Kind
	Type reflect.Type
	Msg  string
	Err  error
}

func newError(kind Kind, t reflect.Type, msg string, cause error) *Error {
	return &Error{Kind: kind, Type: t, Msg: msg, Err: cause}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("binder: ")
	b.WriteString(e.Kind.String())

	if e.Type != nil {
		b.WriteString(" for ")
		b.WriteString(e.Type.String())
	}

	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
