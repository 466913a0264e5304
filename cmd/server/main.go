package main

import "github.com/nguyentranbao-ct/product-console/cmd"

func main() {
	cmd.Execute()
}
