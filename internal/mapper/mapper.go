// Package mapper copies request shapes onto persistable entities.
package mapper

import "github.com/jinzhu/copier"

type Mapper interface {
	// Map copies the fields of src that have a same-named, assignable
	// counterpart in dst. dst must be a pointer.
	Map(dst, src any) error
}

type copierMapper struct{}

func New() Mapper {
	return copierMapper{}
}

func (copierMapper) Map(dst, src any) error {
	return copier.Copy(dst, src)
}
