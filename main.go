package main

import "github.com/adisurya/face-attendance/cmd"

func main() {
	cmd.Execute()
}
