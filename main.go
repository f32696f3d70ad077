// Copyright © 2026 The elmguard authors

package main

import "github.com/henriquecbuss/elmguard/cmd"

func main() {
	cmd.Execute()
}
