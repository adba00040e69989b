package main

import "github.com/Alijeyrad/carepulse_backend/cmd"

func main() {
	cmd.Execute()
}
