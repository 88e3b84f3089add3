/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/portbin/cmd/portbin/cmd"

func main() {
	cmd.Execute()
}
