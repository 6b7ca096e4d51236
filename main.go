// SPDX-License-Identifier: MPL-2.0

package main

import cmd "fpbuild/cmd/fpbuild"

func main() {
	cmd.Execute()
}
