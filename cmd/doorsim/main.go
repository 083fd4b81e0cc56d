// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command doorsim runs stimulus scripts against the door controller.
//
//	doorsim run [--engine model|circuit] [--trace] script.yaml...
//	doorsim version
//
package main

import "github.com/db47h/doorsim/cmd/doorsim/cmd"

func main() {
	cmd.Execute()
}
