package optimizer

import "errors"

var (
	ErrInputNotFound = errors.New("input path does not exist")
	ErrManifestWrite = errors.New("failed to write manifest")
	ErrManifestRead  = errors.New("failed to read manifest")
	ErrImagePanic    = errors.New("panic while processing image")
)
