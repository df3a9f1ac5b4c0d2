package main

import "github.com/lukman83/pricecompare/cmd"

func main() {
	cmd.Execute()
}
