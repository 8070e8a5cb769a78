package sima

import (
	"errors"
	"fmt"
)

// ErrNoRecords indicates a pipeline run extracted nothing across the whole
// batch. The previous output table, if any, is left untouched.
var ErrNoRecords = errors.New("no records extracted")

// ErrNoInputFiles indicates the input directory held no spreadsheet files.
var ErrNoInputFiles = errors.New("no input files found")

// FileError represents a non-fatal failure while processing one source
// file. The pipeline records it and continues with the next file.
type FileError struct {
	File      string
	Component string // "workbook", "extract", "scraped", "table"
	Err       error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("processing %q (%s): %v", e.File, e.Component, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(file, component string, err error) *FileError {
	return &FileError{File: file, Component: component, Err: err}
}
