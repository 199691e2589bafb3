package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// sizeValue is a "ROWSxCOLS" sheet size flag.
type sizeValue struct {
	rows int
	cols int
}

var _ pflag.Value = (*sizeValue)(nil)

func (v *sizeValue) String() string {
	return fmt.Sprintf("%dx%d", v.rows, v.cols)
}

func (v *sizeValue) Set(s string) error {
	r, c, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return fmt.Errorf("size %q must look like 10x5", s)
	}
	rows, err := strconv.Atoi(r)
	if err != nil || rows < 0 {
		return fmt.Errorf("invalid row count %q", r)
	}
	cols, err := strconv.Atoi(c)
	if err != nil || cols < 0 {
		return fmt.Errorf("invalid column count %q", c)
	}
	v.rows, v.cols = rows, cols
	return nil
}

func (v *sizeValue) Type() string {
	return "size"
}

// storageValue selects the storage backing: dense or sparse.
type storageValue string

var _ pflag.Value = (*storageValue)(nil)

func (v *storageValue) String() string {
	return string(*v)
}

func (v *storageValue) Set(s string) error {
	switch s {
	case "dense", "sparse":
		*v = storageValue(s)
		return nil
	}
	return fmt.Errorf("storage must be dense or sparse, got %q", s)
}

func (v *storageValue) Type() string {
	return "storage"
}
