// Package io holds filesystem helpers.
package io

import "os"

// DirCopy copies directory src into directory dest, recursively.
//
// dest and its parents are created if missing. Existing files in dest
// are not overwritten; that is an error, as for os.CopyFS.
func DirCopy(src string, dest string) error {
	if err := os.MkdirAll(dest, os.ModePerm); err != nil {
		return err
	}
	return os.CopyFS(dest, os.DirFS(src))
}
