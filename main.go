// SPDX-License-Identifier: MPL-2.0

package main

import cmd "philang/cmd/phi"

func main() {
	cmd.Execute()
}
