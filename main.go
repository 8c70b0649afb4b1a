package main

import "github.com/nekruzvatanshoev/carprice/pkg/cmd"

func main() {
	cmd.Execute()
}
