package configs

import "errors"

// First returns the first value at path, or the zero value if no file sets it.
// Loaders are validated before lookup, so a failure here is a programming error.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}
