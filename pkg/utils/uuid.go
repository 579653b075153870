package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const runIDSize = 10

// GenerateID gera um identificador curto para uma execução do relatório
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, runIDSize)
}
