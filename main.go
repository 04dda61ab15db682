package main

import "github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/cmd"

func main() {
	cmd.Execute()
}
