/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/intsetbtree/cmd/intsetbench/cmd"

func main() {
	cmd.Execute()
}
