package main

import (
	"errors"

	"github.com/greyh4t/groupsum/reducer"
)

func describe(err error) string {
	switch {
	case errors.Is(err, reducer.ErrResource):
		return "Read dataset failed: " + err.Error()
	case errors.Is(err, reducer.ErrParse):
		return "Parse dataset failed: " + err.Error()
	case errors.Is(err, reducer.ErrBounds):
		return "Not enough groups: " + err.Error()
	case errors.Is(err, reducer.ErrOverflow):
		return "Sum overflow: " + err.Error()
	}
	return err.Error()
}
