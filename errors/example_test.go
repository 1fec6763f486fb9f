package errors_test

import (
	"fmt"
	"io/fs"

	"github.com/GenerousLabs/expo-fs/errors"
)

func ExampleNew() {
	err := errors.New(errors.CodeNotExist, "/repo/.git/HEAD")
	fmt.Println(err.Error())
	// Output: ENOENT: /repo/.git/HEAD
}

func ExampleGetCode() {
	err := fmt.Errorf("mkdir: %w", errors.New(errors.CodeExist, "/repo"))
	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.Is(err, fs.ErrExist))
	// Output:
	// EEXIST
	// true
}

func ExampleWithContext() {
	err := errors.New(errors.CodeNotEmpty, "/repo/objects")
	err = errors.WithContext(err, "op", "rmdir")

	fmt.Println(err.Context()["op"])
	// Output: rmdir
}
